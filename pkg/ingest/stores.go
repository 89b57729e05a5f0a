package ingest

import (
	"context"

	"github.com/google/uuid"

	"studyvault-be/internal/entity"
)

// The pipeline talks to persistence through narrow interfaces so its
// stages can be tested without a database.

type ChunkStore interface {
	UpsertBatch(ctx context.Context, chunks []*entity.Chunk) error
}

type OutlineStore interface {
	Replace(ctx context.Context, outline *entity.DocumentOutline) error
}

type DocumentStatusStore interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Embedder is the slice of the embedding provider the persister needs.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OutlineNotifier is invoked after the document outline is replaced, so
// the course-level aggregate can be rebuilt out of band.
type OutlineNotifier interface {
	OutlineChanged(ctx context.Context, courseId uuid.UUID) error
}
