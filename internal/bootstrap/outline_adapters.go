package bootstrap

import (
	"context"

	"github.com/google/uuid"

	"studyvault-be/internal/entity"
	"studyvault-be/internal/repository/unitofwork"
)

// Thin adapters exposing the outline repositories to the aggregator.

type outlineSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func (s outlineSource) FindByCourseId(ctx context.Context, courseId uuid.UUID) ([]*entity.DocumentOutline, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.OutlineRepository().FindByCourseId(ctx, courseId)
}

type aggregateStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func (s aggregateStore) Replace(ctx context.Context, courseOutline *entity.CourseOutline) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.CourseOutlineRepository().Replace(ctx, courseOutline)
}
