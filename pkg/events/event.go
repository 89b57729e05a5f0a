package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_INGESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Lifecycle events emitted around the ingestion pipeline. Delivery is
// best-effort; the pipeline result never depends on the bus.

func DocumentIngested(documentId, courseId uuid.UUID, itemCount int) Event {
	return BaseEvent{
		Type: "DOCUMENT_INGESTED",
		Data: map[string]interface{}{
			"document_id": documentId.String(),
			"course_id":   courseId.String(),
			"item_count":  itemCount,
		},
		OccurredAt: time.Now(),
	}
}

func DocumentDeleted(documentId, courseId uuid.UUID) Event {
	return BaseEvent{
		Type: "DOCUMENT_DELETED",
		Data: map[string]interface{}{
			"document_id": documentId.String(),
			"course_id":   courseId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func CourseOutlineRebuilt(courseId uuid.UUID, topicCount int) Event {
	return BaseEvent{
		Type: "COURSE_OUTLINE_REBUILT",
		Data: map[string]interface{}{
			"course_id":   courseId.String(),
			"topic_count": topicCount,
		},
		OccurredAt: time.Now(),
	}
}
