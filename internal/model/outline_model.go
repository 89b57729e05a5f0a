package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DocumentOutline struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	DocumentId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	CourseId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Sections   datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (DocumentOutline) TableName() string {
	return "document_outlines"
}

type CourseOutline struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CourseId    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Topics      datatypes.JSON `gorm:"type:jsonb"` // null jsonb encodes the explicit "no outline" state
	LastUpdated time.Time      `gorm:"autoUpdateTime"`
}

func (CourseOutline) TableName() string {
	return "course_outlines"
}
