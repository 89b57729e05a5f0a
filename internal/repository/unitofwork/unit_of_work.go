package unitofwork

import (
	"context"

	"studyvault-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	UniversityRepository() contract.UniversityRepository
	CourseRepository() contract.CourseRepository
	DocumentRepository() contract.DocumentRepository
	ChunkRepository() contract.ChunkRepository
	OutlineRepository() contract.OutlineRepository
	CourseOutlineRepository() contract.CourseOutlineRepository
}
