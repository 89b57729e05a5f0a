package mapper

import (
	"time"

	"studyvault-be/internal/entity"
	"studyvault-be/internal/model"
)

type UniversityMapper struct{}

func NewUniversityMapper() *UniversityMapper {
	return &UniversityMapper{}
}

func (m *UniversityMapper) ToEntity(u *model.University) *entity.University {
	if u == nil {
		return nil
	}

	var updatedAt *time.Time
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		updatedAt = &t
	}

	return &entity.University{
		Id:        u.Id,
		Name:      u.Name,
		Country:   u.Country,
		CreatedAt: u.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *UniversityMapper) ToModel(u *entity.University) *model.University {
	if u == nil {
		return nil
	}

	var updatedAt time.Time
	if u.UpdatedAt != nil {
		updatedAt = *u.UpdatedAt
	}

	return &model.University{
		Id:        u.Id,
		Name:      u.Name,
		Country:   u.Country,
		CreatedAt: u.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *UniversityMapper) ToEntities(universities []*model.University) []*entity.University {
	entities := make([]*entity.University, len(universities))
	for i, u := range universities {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

type CourseMapper struct{}

func NewCourseMapper() *CourseMapper {
	return &CourseMapper{}
}

func (m *CourseMapper) ToEntity(c *model.Course) *entity.Course {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Course{
		Id:           c.Id,
		UniversityId: c.UniversityId,
		Name:         c.Name,
		Code:         c.Code,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *CourseMapper) ToModel(c *entity.Course) *model.Course {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Course{
		Id:           c.Id,
		UniversityId: c.UniversityId,
		Name:         c.Name,
		Code:         c.Code,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *CourseMapper) ToEntities(courses []*model.Course) []*entity.Course {
	entities := make([]*entity.Course, len(courses))
	for i, c := range courses {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
