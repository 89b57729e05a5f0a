package implementation

import (
	"context"
	"errors"

	"studyvault-be/internal/entity"
	"studyvault-be/internal/mapper"
	"studyvault-be/internal/model"
	"studyvault-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutlineRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OutlineMapper
}

func NewOutlineRepository(db *gorm.DB) contract.OutlineRepository {
	return &OutlineRepositoryImpl{
		db:     db,
		mapper: mapper.NewOutlineMapper(),
	}
}

func (r *OutlineRepositoryImpl) Replace(ctx context.Context, outline *entity.DocumentOutline) error {
	m := r.mapper.ToModel(outline)

	// One outline per document; a new run supersedes the old row.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "document_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"course_id", "sections", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*outline = *r.mapper.ToEntity(m)
	return nil
}

func (r *OutlineRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DocumentOutline{}).Error
}

func (r *OutlineRepositoryImpl) FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.DocumentOutline, error) {
	var m model.DocumentOutline
	err := r.db.WithContext(ctx).Where("document_id = ?", documentId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OutlineRepositoryImpl) FindByCourseId(ctx context.Context, courseId uuid.UUID) ([]*entity.DocumentOutline, error) {
	var models []*model.DocumentOutline
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseId).
		Order("updated_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

type CourseOutlineRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseOutlineMapper
}

func NewCourseOutlineRepository(db *gorm.DB) contract.CourseOutlineRepository {
	return &CourseOutlineRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseOutlineMapper(),
	}
}

func (r *CourseOutlineRepositoryImpl) Replace(ctx context.Context, outline *entity.CourseOutline) error {
	m := r.mapper.ToModel(outline)

	// Single-statement upsert: readers see the old aggregate or the new
	// one, never a partial mix.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"topics", "last_updated"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*outline = *r.mapper.ToEntity(m)
	return nil
}

func (r *CourseOutlineRepositoryImpl) FindByCourseId(ctx context.Context, courseId uuid.UUID) (*entity.CourseOutline, error) {
	var m model.CourseOutline
	err := r.db.WithContext(ctx).Where("course_id = ?", courseId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
