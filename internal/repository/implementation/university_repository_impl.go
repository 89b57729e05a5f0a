package implementation

import (
	"context"
	"errors"

	"studyvault-be/internal/entity"
	"studyvault-be/internal/mapper"
	"studyvault-be/internal/model"
	"studyvault-be/internal/repository/contract"
	"studyvault-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UniversityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UniversityMapper
}

func NewUniversityRepository(db *gorm.DB) contract.UniversityRepository {
	return &UniversityRepositoryImpl{
		db:     db,
		mapper: mapper.NewUniversityMapper(),
	}
}

func (r *UniversityRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UniversityRepositoryImpl) Create(ctx context.Context, university *entity.University) error {
	m := r.mapper.ToModel(university)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*university = *r.mapper.ToEntity(m)
	return nil
}

func (r *UniversityRepositoryImpl) Update(ctx context.Context, university *entity.University) error {
	m := r.mapper.ToModel(university)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*university = *r.mapper.ToEntity(m)
	return nil
}

func (r *UniversityRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.University{}, id).Error
}

func (r *UniversityRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.University, error) {
	var m model.University
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UniversityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.University, error) {
	var models []*model.University
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
