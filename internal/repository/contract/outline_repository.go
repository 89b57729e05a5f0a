package contract

import (
	"context"

	"studyvault-be/internal/entity"

	"github.com/google/uuid"
)

type OutlineRepository interface {
	// Replace supersedes any prior outline of the same document.
	Replace(ctx context.Context, outline *entity.DocumentOutline) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.DocumentOutline, error)
	FindByCourseId(ctx context.Context, courseId uuid.UUID) ([]*entity.DocumentOutline, error)
}

type CourseOutlineRepository interface {
	// Replace atomically swaps the whole aggregate for the course.
	Replace(ctx context.Context, outline *entity.CourseOutline) error
	FindByCourseId(ctx context.Context, courseId uuid.UUID) (*entity.CourseOutline, error)
}
