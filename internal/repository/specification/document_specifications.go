package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByCourse filters rows belonging to a course
type ByCourse struct {
	CourseID uuid.UUID
}

func (s ByCourse) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("course_id = ?", s.CourseID)
}

// ByDocument filters rows belonging to a document
type ByDocument struct {
	DocumentID uuid.UUID
}

func (s ByDocument) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// ByUniversity filters courses of a university
type ByUniversity struct {
	UniversityID uuid.UUID
}

func (s ByUniversity) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("university_id = ?", s.UniversityID)
}

// ByStatus filters documents by ingestion status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
