package entity

import (
	"time"

	"github.com/google/uuid"
)

type OutlineSection struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	KnowledgePoints []string `json:"knowledge_points"`
}

// DocumentOutline is the derived section structure of one document.
// A re-ingestion run replaces it wholesale.
type DocumentOutline struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	CourseId   uuid.UUID
	Sections   []OutlineSection
	UpdatedAt  time.Time
}

type CourseTopic struct {
	Topic               string      `json:"topic"`
	Subtopics           []string    `json:"subtopics"`
	RelatedDocuments    []uuid.UUID `json:"related_documents"`
	KnowledgePointCount int         `json:"knowledge_point_count"`
}

// CourseOutline aggregates every document outline of a course. Topics == nil
// is the explicit "no outline" state written when the course has no documents
// with outlines, as opposed to the row being absent.
type CourseOutline struct {
	Id          uuid.UUID
	CourseId    uuid.UUID
	Topics      []CourseTopic
	LastUpdated time.Time
}
