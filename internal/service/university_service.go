package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"studyvault-be/internal/dto"
	"studyvault-be/internal/entity"
	"studyvault-be/internal/repository/memory"
	"studyvault-be/internal/repository/specification"
	"studyvault-be/internal/repository/unitofwork"
)

type IUniversityService interface {
	GetAll(ctx context.Context) ([]*dto.UniversityResponse, error)
	Create(ctx context.Context, req *dto.CreateUniversityRequest) (*dto.UniversityResponse, error)
}

type universityService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.ReferenceCache
}

func NewUniversityService(uowFactory unitofwork.RepositoryFactory, cache *memory.ReferenceCache) IUniversityService {
	return &universityService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (c *universityService) GetAll(ctx context.Context) ([]*dto.UniversityResponse, error) {
	if cached, ok := c.cache.Get(memory.KeyAllUniversities); ok {
		return cached.([]*dto.UniversityResponse), nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	universities, err := uow.UniversityRepository().FindAll(ctx,
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.UniversityResponse, 0, len(universities))
	for _, university := range universities {
		response = append(response, &dto.UniversityResponse{
			Id:        university.Id,
			Name:      university.Name,
			Country:   university.Country,
			CreatedAt: university.CreatedAt,
		})
	}

	c.cache.Set(memory.KeyAllUniversities, response)
	return response, nil
}

func (c *universityService) Create(ctx context.Context, req *dto.CreateUniversityRequest) (*dto.UniversityResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	university := entity.University{
		Id:        uuid.New(),
		Name:      req.Name,
		Country:   req.Country,
		CreatedAt: time.Now(),
	}
	if err := uow.UniversityRepository().Create(ctx, &university); err != nil {
		return nil, err
	}

	c.cache.Invalidate(memory.KeyAllUniversities)

	return &dto.UniversityResponse{
		Id:        university.Id,
		Name:      university.Name,
		Country:   university.Country,
		CreatedAt: university.CreatedAt,
	}, nil
}
