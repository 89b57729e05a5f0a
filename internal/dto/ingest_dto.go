package dto

import (
	"github.com/google/uuid"
)

// Pipeline stages, in order. A job never moves backwards and the two
// terminal stages are final.
const (
	StageParsingPdf = "parsing_pdf"
	StageExtracting = "extracting"
	StageEmbedding  = "embedding"
	StageComplete   = "complete"
	StageError      = "error"
)

type IngestEventType string

const (
	EventStatus     IngestEventType = "status"
	EventItem       IngestEventType = "item"
	EventBatchSaved IngestEventType = "batch_saved"
	EventError      IngestEventType = "error"
	EventComplete   IngestEventType = "complete"
)

const ItemTypeKnowledgePoint = "knowledge_point"

// KnowledgePointPayload is the item-level payload streamed to the caller
// as each knowledge point is parsed.
type KnowledgePointPayload struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Section     string   `json:"section"`
	SourcePages []int    `json:"source_pages"`
	KeyConcepts []string `json:"key_concepts,omitempty"`
}

type IngestProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// IngestEvent is one element of the ordered, append-only event sequence
// a caller receives during ingestion. The stream always terminates with
// a complete or an error event.
type IngestEvent struct {
	Type     IngestEventType        `json:"type"`
	Stage    string                 `json:"stage,omitempty"`
	Index    int                    `json:"index,omitempty"`
	ItemType string                 `json:"item_type,omitempty"`
	Data     *KnowledgePointPayload `json:"data,omitempty"`
	ChunkIds []uuid.UUID            `json:"chunk_ids,omitempty"`
	Message  string                 `json:"message,omitempty"`
	Count    int                    `json:"count,omitempty"`
	Progress *IngestProgress        `json:"progress,omitempty"`
}

type IngestDocumentResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
}
