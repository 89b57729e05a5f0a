package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	CourseId  uuid.UUID `json:"course_id"`
	Filename  string    `json:"filename"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type SemanticSearchResponse struct {
	ChunkId        uuid.UUID `json:"chunk_id"`
	DocumentId     uuid.UUID `json:"document_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	SourcePages    []int     `json:"source_pages"`
	RelevanceScore float64   `json:"relevance_score"`
}

type DocumentOutlineResponse struct {
	DocumentId uuid.UUID                `json:"document_id"`
	Sections   []OutlineSectionResponse `json:"sections"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

type OutlineSectionResponse struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	KnowledgePoints []string `json:"knowledge_points"`
}
