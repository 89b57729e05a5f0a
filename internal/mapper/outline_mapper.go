package mapper

import (
	"encoding/json"

	"studyvault-be/internal/entity"
	"studyvault-be/internal/model"

	"gorm.io/datatypes"
)

type OutlineMapper struct{}

func NewOutlineMapper() *OutlineMapper {
	return &OutlineMapper{}
}

func (m *OutlineMapper) ToEntity(o *model.DocumentOutline) *entity.DocumentOutline {
	if o == nil {
		return nil
	}

	var sections []entity.OutlineSection
	if len(o.Sections) > 0 {
		_ = json.Unmarshal(o.Sections, &sections)
	}

	return &entity.DocumentOutline{
		Id:         o.Id,
		DocumentId: o.DocumentId,
		CourseId:   o.CourseId,
		Sections:   sections,
		UpdatedAt:  o.UpdatedAt,
	}
}

func (m *OutlineMapper) ToModel(o *entity.DocumentOutline) *model.DocumentOutline {
	if o == nil {
		return nil
	}

	sections := o.Sections
	if sections == nil {
		sections = []entity.OutlineSection{}
	}
	sectionsJson, _ := json.Marshal(sections)

	return &model.DocumentOutline{
		Id:         o.Id,
		DocumentId: o.DocumentId,
		CourseId:   o.CourseId,
		Sections:   datatypes.JSON(sectionsJson),
		UpdatedAt:  o.UpdatedAt,
	}
}

func (m *OutlineMapper) ToEntities(outlines []*model.DocumentOutline) []*entity.DocumentOutline {
	entities := make([]*entity.DocumentOutline, len(outlines))
	for i, o := range outlines {
		entities[i] = m.ToEntity(o)
	}
	return entities
}

type CourseOutlineMapper struct{}

func NewCourseOutlineMapper() *CourseOutlineMapper {
	return &CourseOutlineMapper{}
}

func (m *CourseOutlineMapper) ToEntity(o *model.CourseOutline) *entity.CourseOutline {
	if o == nil {
		return nil
	}

	// Topics stays nil for the explicit null-outline row.
	var topics []entity.CourseTopic
	if len(o.Topics) > 0 && string(o.Topics) != "null" {
		_ = json.Unmarshal(o.Topics, &topics)
	}

	return &entity.CourseOutline{
		Id:          o.Id,
		CourseId:    o.CourseId,
		Topics:      topics,
		LastUpdated: o.LastUpdated,
	}
}

func (m *CourseOutlineMapper) ToModel(o *entity.CourseOutline) *model.CourseOutline {
	if o == nil {
		return nil
	}

	topicsJson, _ := json.Marshal(o.Topics) // nil marshals to "null" on purpose

	return &model.CourseOutline{
		Id:          o.Id,
		CourseId:    o.CourseId,
		Topics:      datatypes.JSON(topicsJson),
		LastUpdated: o.LastUpdated,
	}
}
