package ingest

import (
	"context"

	"github.com/google/uuid"

	"studyvault-be/internal/dto"
)

// Streamer pushes typed progress events to the single consumer of an
// ingestion run. Events are appended in order on a bounded channel;
// sends respect context cancellation so a disconnected caller unwinds
// the pipeline instead of leaking the goroutine.
type Streamer struct {
	ch      chan dto.IngestEvent
	current int
	total   int
}

const streamBuffer = 16

func NewStreamer() *Streamer {
	return &Streamer{
		ch: make(chan dto.IngestEvent, streamBuffer),
	}
}

// Events returns the receive side of the stream. The channel is closed
// after the terminal event.
func (s *Streamer) Events() <-chan dto.IngestEvent {
	return s.ch
}

// SetTotal fixes the denominator reported in progress once the item
// count is known.
func (s *Streamer) SetTotal(total int) {
	s.total = total
}

func (s *Streamer) send(ctx context.Context, event dto.IngestEvent) bool {
	select {
	case s.ch <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Streamer) Status(ctx context.Context, stage string) bool {
	return s.send(ctx, dto.IngestEvent{
		Type:  dto.EventStatus,
		Stage: stage,
	})
}

func (s *Streamer) Item(ctx context.Context, index int, payload *dto.KnowledgePointPayload) bool {
	s.current++
	return s.send(ctx, dto.IngestEvent{
		Type:     dto.EventItem,
		Index:    index,
		ItemType: dto.ItemTypeKnowledgePoint,
		Data:     payload,
		Progress: &dto.IngestProgress{
			Current: s.current,
			Total:   s.total,
		},
	})
}

func (s *Streamer) BatchSaved(ctx context.Context, chunkIds []uuid.UUID) bool {
	return s.send(ctx, dto.IngestEvent{
		Type:     dto.EventBatchSaved,
		ChunkIds: chunkIds,
	})
}

func (s *Streamer) Error(ctx context.Context, message string) bool {
	return s.send(ctx, dto.IngestEvent{
		Type:    dto.EventError,
		Message: message,
	})
}

func (s *Streamer) Complete(ctx context.Context, itemCount int) bool {
	return s.send(ctx, dto.IngestEvent{
		Type:  dto.EventComplete,
		Count: itemCount,
	})
}

// Close ends the stream. Call exactly once, after the terminal event.
func (s *Streamer) Close() {
	close(s.ch)
}
