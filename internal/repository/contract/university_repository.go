package contract

import (
	"context"

	"studyvault-be/internal/entity"
	"studyvault-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UniversityRepository interface {
	Create(ctx context.Context, university *entity.University) error
	Update(ctx context.Context, university *entity.University) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.University, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.University, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	Update(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error)
}
