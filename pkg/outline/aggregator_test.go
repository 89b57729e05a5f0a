package outline

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"studyvault-be/internal/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeSource struct {
	outlines []*entity.DocumentOutline
}

func (s *fakeSource) FindByCourseId(ctx context.Context, courseId uuid.UUID) ([]*entity.DocumentOutline, error) {
	return s.outlines, nil
}

type fakeAggregates struct {
	replaced *entity.CourseOutline
}

func (s *fakeAggregates) Replace(ctx context.Context, outline *entity.CourseOutline) error {
	s.replaced = outline
	return nil
}

type fakeInvalidator struct {
	courseIds []uuid.UUID
}

func (i *fakeInvalidator) InvalidateCourse(courseId uuid.UUID) {
	i.courseIds = append(i.courseIds, courseId)
}

func TestRegenerateNoCrossDocumentMerge(t *testing.T) {
	courseId := uuid.New()
	docA, docB := uuid.New(), uuid.New()

	// Two documents both titled a section "Intro"; they must stay
	// separate topics.
	source := &fakeSource{outlines: []*entity.DocumentOutline{
		{
			DocumentId: docA,
			CourseId:   courseId,
			Sections: []entity.OutlineSection{
				{Title: "Intro", KnowledgePoints: []string{"What is calculus", "History"}},
			},
		},
		{
			DocumentId: docB,
			CourseId:   courseId,
			Sections: []entity.OutlineSection{
				{Title: "Intro", KnowledgePoints: []string{"Course logistics"}},
				{Title: "Limits", KnowledgePoints: []string{"Epsilon-delta", "One-sided limits", "Continuity"}},
			},
		},
	}}
	aggregates := &fakeAggregates{}
	invalidator := &fakeInvalidator{}

	aggregator := NewAggregator(source, aggregates, invalidator, nopLogger{})
	if err := aggregator.Regenerate(context.Background(), courseId); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}

	if aggregates.replaced == nil {
		t.Fatal("aggregate not written")
	}
	topics := aggregates.replaced.Topics
	if len(topics) != 3 {
		t.Fatalf("topics = %d, want 3 (no merge of same-titled sections)", len(topics))
	}

	if topics[0].Topic != "Intro" || topics[0].KnowledgePointCount != 2 {
		t.Errorf("topic 0 = %+v", topics[0])
	}
	if topics[1].Topic != "Intro" || topics[1].KnowledgePointCount != 1 {
		t.Errorf("topic 1 = %+v", topics[1])
	}
	if topics[2].Topic != "Limits" || topics[2].KnowledgePointCount != 3 {
		t.Errorf("topic 2 = %+v", topics[2])
	}

	if len(topics[0].RelatedDocuments) != 1 || topics[0].RelatedDocuments[0] != docA {
		t.Errorf("topic 0 documents = %v, want [%s]", topics[0].RelatedDocuments, docA)
	}
	if topics[1].RelatedDocuments[0] != docB {
		t.Errorf("topic 1 documents = %v, want [%s]", topics[1].RelatedDocuments, docB)
	}

	if len(invalidator.courseIds) != 1 || invalidator.courseIds[0] != courseId {
		t.Errorf("cache invalidation calls = %v", invalidator.courseIds)
	}
}

func TestRegenerateEmptyCourseWritesNullOutline(t *testing.T) {
	courseId := uuid.New()
	aggregates := &fakeAggregates{}

	aggregator := NewAggregator(&fakeSource{}, aggregates, &fakeInvalidator{}, nopLogger{})
	if err := aggregator.Regenerate(context.Background(), courseId); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}

	if aggregates.replaced == nil {
		t.Fatal("null outline row must still be written")
	}
	if aggregates.replaced.Topics != nil {
		t.Errorf("topics = %v, want nil for the explicit null state", aggregates.replaced.Topics)
	}
	if aggregates.replaced.CourseId != courseId {
		t.Errorf("course id = %s, want %s", aggregates.replaced.CourseId, courseId)
	}
	if aggregates.replaced.LastUpdated.IsZero() {
		t.Error("last updated not set")
	}
}
