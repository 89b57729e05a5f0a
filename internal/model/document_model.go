package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	CourseId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Filename  string         `gorm:"type:varchar(512)"`
	Type      string         `gorm:"type:varchar(32);default:'pdf'"`
	Status    string         `gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
