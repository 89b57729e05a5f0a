package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCourseRequest struct {
	UniversityId uuid.UUID `json:"university_id" validate:"required"`
	Name         string    `json:"name" validate:"required,min=2,max=255"`
	Code         string    `json:"code" validate:"max=64"`
}

type CourseResponse struct {
	Id           uuid.UUID `json:"id"`
	UniversityId uuid.UUID `json:"university_id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateUniversityRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Country string `json:"country" validate:"max=128"`
}

type UniversityResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

type CourseTopicResponse struct {
	Topic               string      `json:"topic"`
	Subtopics           []string    `json:"subtopics"`
	RelatedDocuments    []uuid.UUID `json:"related_documents"`
	KnowledgePointCount int         `json:"knowledge_point_count"`
}

// CourseOutlineResponse: Topics == nil signals the explicit "no outline"
// state (a course whose documents produced no outlines).
type CourseOutlineResponse struct {
	CourseId    uuid.UUID             `json:"course_id"`
	Topics      []CourseTopicResponse `json:"topics"`
	LastUpdated time.Time             `json:"last_updated"`
}

// RegenerateOutlineMessage is the watermill payload that asks the
// consumer to rebuild a course outline.
type RegenerateOutlineMessage struct {
	CourseId uuid.UUID `json:"course_id"`
}
