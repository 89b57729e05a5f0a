package outline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studyvault-be/internal/entity"
	"studyvault-be/internal/pkg/logger"
)

type OutlineSource interface {
	FindByCourseId(ctx context.Context, courseId uuid.UUID) ([]*entity.DocumentOutline, error)
}

type AggregateStore interface {
	Replace(ctx context.Context, outline *entity.CourseOutline) error
}

// ListInvalidator drops cached listings that embed outline-derived data.
type ListInvalidator interface {
	InvalidateCourse(courseId uuid.UUID)
}

// Aggregator rebuilds a course outline in full from the document outlines
// of the course. It never patches incrementally, so the aggregate is
// consistent after any document is added, re-ingested or removed.
type Aggregator struct {
	outlines    OutlineSource
	aggregates  AggregateStore
	invalidator ListInvalidator
	logger      logger.ILogger
	now         func() time.Time
}

func NewAggregator(outlines OutlineSource, aggregates AggregateStore, invalidator ListInvalidator, logger logger.ILogger) *Aggregator {
	return &Aggregator{
		outlines:    outlines,
		aggregates:  aggregates,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

// Regenerate reads every document outline of the course and replaces the
// aggregate. A course with no outlines gets an explicit null outline, not
// a missing row. Sections are never merged across documents: two sections
// with the same title in different documents stay separate topics.
func (a *Aggregator) Regenerate(ctx context.Context, courseId uuid.UUID) error {
	documentOutlines, err := a.outlines.FindByCourseId(ctx, courseId)
	if err != nil {
		return fmt.Errorf("load document outlines: %w", err)
	}

	aggregate := &entity.CourseOutline{
		Id:          uuid.New(),
		CourseId:    courseId,
		LastUpdated: a.now(),
	}

	if len(documentOutlines) > 0 {
		topics := make([]entity.CourseTopic, 0)
		for _, documentOutline := range documentOutlines {
			for _, section := range documentOutline.Sections {
				topics = append(topics, entity.CourseTopic{
					Topic:               section.Title,
					Subtopics:           section.KnowledgePoints,
					RelatedDocuments:    []uuid.UUID{documentOutline.DocumentId},
					KnowledgePointCount: len(section.KnowledgePoints),
				})
			}
		}
		aggregate.Topics = topics
	}

	if err := a.aggregates.Replace(ctx, aggregate); err != nil {
		return fmt.Errorf("replace course outline: %w", err)
	}

	if a.invalidator != nil {
		a.invalidator.InvalidateCourse(courseId)
	}

	a.logger.Info("Aggregator.Regenerate", "course outline rebuilt", map[string]interface{}{
		"course_id": courseId.String(),
		"documents": len(documentOutlines),
	})

	return nil
}
