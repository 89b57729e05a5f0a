package ingest

import (
	"context"
	"testing"

	"studyvault-be/internal/dto"
)

func TestStreamerCancelledContextStopsSends(t *testing.T) {
	streamer := NewStreamer()
	ctx, cancel := context.WithCancel(context.Background())

	// Fill the buffer with no consumer, then cancel
	for i := 0; i < streamBuffer; i++ {
		if !streamer.Status(ctx, dto.StageParsingPdf) {
			t.Fatalf("send %d into free buffer failed", i)
		}
	}
	cancel()

	if streamer.Status(ctx, dto.StageExtracting) {
		t.Error("send after cancel on a full buffer should fail")
	}
}

func TestStreamerProgressTracksTotal(t *testing.T) {
	streamer := NewStreamer()
	streamer.SetTotal(2)
	ctx := context.Background()

	streamer.Item(ctx, 0, &dto.KnowledgePointPayload{Title: "a"})
	streamer.Item(ctx, 1, &dto.KnowledgePointPayload{Title: "b"})
	streamer.Close()

	var events []dto.IngestEvent
	for event := range streamer.Events() {
		events = append(events, event)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	for i, event := range events {
		if event.Progress.Current != i+1 || event.Progress.Total != 2 {
			t.Errorf("event %d progress = %+v", i, event.Progress)
		}
	}
}
