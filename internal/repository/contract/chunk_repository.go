package contract

import (
	"context"

	"studyvault-be/internal/entity"
	"studyvault-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredChunk pairs a chunk with its cosine similarity to a query vector
type ScoredChunk struct {
	Chunk      *entity.Chunk
	Similarity float64
}

type ChunkRepository interface {
	// UpsertBatch writes a batch of chunks, overwriting rows whose ids
	// already exist. Ids are deterministic, so re-ingestion replaces
	// chunks in place instead of duplicating them.
	UpsertBatch(ctx context.Context, chunks []*entity.Chunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, courseId uuid.UUID, threshold float64) ([]*ScoredChunk, error)
}
