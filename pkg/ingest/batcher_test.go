package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"studyvault-be/internal/dto"
	"studyvault-be/internal/entity"
	"studyvault-be/pkg/ai/extractor"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeChunkStore struct {
	batches [][]*entity.Chunk
	calls   int
	failOn  int // 1-based call number to fail, 0 = never
}

func (s *fakeChunkStore) UpsertBatch(ctx context.Context, chunks []*entity.Chunk) error {
	s.calls++
	if s.failOn > 0 && s.calls == s.failOn {
		return errors.New("storage unavailable")
	}
	s.batches = append(s.batches, chunks)
	return nil
}

type fakeEmbedder struct {
	calls int
	err   error
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			Index:   i,
			Section: extractor.Section{Title: "Section"},
			Point: extractor.KnowledgePoint{
				Title:       fmt.Sprintf("Point %d", i),
				Content:     fmt.Sprintf("Content %d", i),
				SourcePages: []int{i + 1},
			},
		}
	}
	return items
}

func drain(streamer *Streamer) []dto.IngestEvent {
	streamer.Close()
	var events []dto.IngestEvent
	for event := range streamer.Events() {
		events = append(events, event)
	}
	return events
}

func TestBatchPersisterBatchSizes(t *testing.T) {
	store := &fakeChunkStore{}
	persister := NewBatchPersister(store, &fakeEmbedder{}, nopLogger{})
	streamer := NewStreamer()
	documentId := uuid.New()

	saved, alive := persister.Persist(context.Background(), documentId, makeItems(7), streamer)
	if !alive {
		t.Fatal("persist reported dead stream")
	}
	if saved != 7 {
		t.Fatalf("saved = %d, want 7", saved)
	}

	wantSizes := []int{3, 3, 1}
	if len(store.batches) != len(wantSizes) {
		t.Fatalf("batches = %d, want %d", len(store.batches), len(wantSizes))
	}
	seen := make(map[uuid.UUID]bool)
	for i, batch := range store.batches {
		if len(batch) != wantSizes[i] {
			t.Errorf("batch %d size = %d, want %d", i, len(batch), wantSizes[i])
		}
		for _, chunk := range batch {
			if seen[chunk.Id] {
				t.Errorf("chunk %s appears in two batches", chunk.Id)
			}
			seen[chunk.Id] = true
		}
	}

	events := drain(streamer)
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3 batch_saved", len(events))
	}
	for i, event := range events {
		if event.Type != dto.EventBatchSaved {
			t.Errorf("event %d type = %s, want batch_saved", i, event.Type)
		}
		if len(event.ChunkIds) != wantSizes[i] {
			t.Errorf("event %d ids = %d, want %d", i, len(event.ChunkIds), wantSizes[i])
		}
	}
}

func TestBatchPersisterFailedBatchDoesNotHaltRest(t *testing.T) {
	store := &fakeChunkStore{failOn: 2}
	persister := NewBatchPersister(store, &fakeEmbedder{}, nopLogger{})
	streamer := NewStreamer()

	saved, alive := persister.Persist(context.Background(), uuid.New(), makeItems(7), streamer)
	if !alive {
		t.Fatal("persist reported dead stream")
	}
	// Batch two (3 items) lost, batches one and three land
	if saved != 4 {
		t.Fatalf("saved = %d, want 4", saved)
	}
	if len(store.batches) != 2 || len(store.batches[0]) != 3 || len(store.batches[1]) != 1 {
		t.Fatalf("stored batch sizes wrong: %d batches", len(store.batches))
	}

	events := drain(streamer)
	var types []dto.IngestEventType
	for _, event := range events {
		types = append(types, event.Type)
	}
	want := []dto.IngestEventType{dto.EventBatchSaved, dto.EventError, dto.EventBatchSaved}
	if len(types) != len(want) {
		t.Fatalf("event types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("event types = %v, want %v", types, want)
		}
	}
}

func TestBatchPersisterEmbeddingFailureFailsBatch(t *testing.T) {
	store := &fakeChunkStore{}
	persister := NewBatchPersister(store, &fakeEmbedder{err: errors.New("provider down")}, nopLogger{})
	streamer := NewStreamer()

	saved, alive := persister.Persist(context.Background(), uuid.New(), makeItems(4), streamer)
	if !alive {
		t.Fatal("persist reported dead stream")
	}
	if saved != 0 {
		t.Fatalf("saved = %d, want 0", saved)
	}
	if len(store.batches) != 0 {
		t.Fatalf("batches = %d, want 0", len(store.batches))
	}

	events := drain(streamer)
	for _, event := range events {
		if event.Type != dto.EventError {
			t.Errorf("event type = %s, want error", event.Type)
		}
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want one error per batch", len(events))
	}
}

func TestChunkIdDeterministic(t *testing.T) {
	documentId := uuid.New()

	if ChunkId(documentId, 0) != ChunkId(documentId, 0) {
		t.Error("same document and index must give the same id")
	}
	if ChunkId(documentId, 0) == ChunkId(documentId, 1) {
		t.Error("different indexes must give different ids")
	}
	if ChunkId(documentId, 0) == ChunkId(uuid.New(), 0) {
		t.Error("different documents must give different ids")
	}
}
