package entity

import (
	"time"

	"github.com/google/uuid"
)

type University struct {
	Id        uuid.UUID
	Name      string
	Country   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type Course struct {
	Id           uuid.UUID
	UniversityId uuid.UUID
	Name         string
	Code         string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
