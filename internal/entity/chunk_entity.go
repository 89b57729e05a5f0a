package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChunkMetadata travels with the chunk as a jsonb column. SourcePages is
// never nil after mapping so consumers can range without a guard.
type ChunkMetadata struct {
	Title       string   `json:"title"`
	KeyConcepts []string `json:"key_concepts,omitempty"`
	KeyFormulas []string `json:"key_formulas,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	SourcePages []int    `json:"source_pages"`
}

// Chunk is the persisted, embeddable unit derived from one knowledge point.
// Its id is deterministic per (document, index) so re-ingestion overwrites.
type Chunk struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	Content        string
	Metadata       ChunkMetadata
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
