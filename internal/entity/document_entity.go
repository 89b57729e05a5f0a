package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DocumentStatusPending    = "pending"
	DocumentStatusProcessing = "processing"
	DocumentStatusComplete   = "complete"
	DocumentStatusError      = "error"
)

type Document struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	CourseId  uuid.UUID
	Filename  string
	Type      string
	Status    string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
