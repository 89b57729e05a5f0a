package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"studyvault-be/internal/dto"
	"studyvault-be/internal/entity"
	"studyvault-be/pkg/ai/extractor"
	"studyvault-be/pkg/extract"
)

type fakeTextExtractor struct {
	pages []extract.Page
	err   error
}

func (e *fakeTextExtractor) Extract(data []byte) ([]extract.Page, error) {
	return e.pages, e.err
}

type fakeSectionExtractor struct {
	sections []extractor.Section
	err      error
	calls    int
}

func (e *fakeSectionExtractor) Extract(ctx context.Context, pages []extract.Page) ([]extractor.Section, error) {
	e.calls++
	return e.sections, e.err
}

type fakeOutlineStore struct {
	replaced *entity.DocumentOutline
}

func (s *fakeOutlineStore) Replace(ctx context.Context, outline *entity.DocumentOutline) error {
	s.replaced = outline
	return nil
}

type fakeStatusStore struct {
	statuses []string
}

func (s *fakeStatusStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	s.statuses = append(s.statuses, status)
	return nil
}

type fakeNotifier struct {
	courseIds []uuid.UUID
}

func (n *fakeNotifier) OutlineChanged(ctx context.Context, courseId uuid.UUID) error {
	n.courseIds = append(n.courseIds, courseId)
	return nil
}

func sectionsWithPoints(counts ...int) []extractor.Section {
	sections := make([]extractor.Section, 0, len(counts))
	for s, count := range counts {
		points := make([]extractor.KnowledgePoint, 0, count)
		for p := 0; p < count; p++ {
			points = append(points, extractor.KnowledgePoint{
				Title:       "Point",
				Content:     "Content",
				SourcePages: []int{1},
			})
		}
		sections = append(sections, extractor.Section{
			Title:           "Section",
			Summary:         "Summary",
			SourcePages:     []int{s + 1},
			KnowledgePoints: points,
		})
	}
	return sections
}

func collect(events <-chan dto.IngestEvent) []dto.IngestEvent {
	var all []dto.IngestEvent
	for event := range events {
		all = append(all, event)
	}
	return all
}

func newTestOrchestrator(text extract.TextExtractor, sections SectionExtractor, chunks *fakeChunkStore, outlines *fakeOutlineStore, statuses *fakeStatusStore, notifier *fakeNotifier) *Orchestrator {
	persister := NewBatchPersister(chunks, &fakeEmbedder{}, nopLogger{})
	return NewOrchestrator(text, sections, persister, outlines, statuses, notifier, nopLogger{})
}

func TestOrchestratorFullRun(t *testing.T) {
	text := &fakeTextExtractor{pages: []extract.Page{{Page: 1, Text: "lecture"}, {Page: 2, Text: "more"}}}
	sections := &fakeSectionExtractor{sections: sectionsWithPoints(4, 3)}
	chunks := &fakeChunkStore{}
	outlines := &fakeOutlineStore{}
	statuses := &fakeStatusStore{}
	notifier := &fakeNotifier{}

	orchestrator := newTestOrchestrator(text, sections, chunks, outlines, statuses, notifier)
	documentId, courseId := uuid.New(), uuid.New()

	events := collect(orchestrator.Run(context.Background(), documentId, courseId, []byte("pdf")))

	var types []dto.IngestEventType
	for _, event := range events {
		types = append(types, event.Type)
	}
	want := []dto.IngestEventType{
		dto.EventStatus, dto.EventStatus, dto.EventStatus,
		dto.EventItem, dto.EventItem, dto.EventItem, dto.EventItem, dto.EventItem, dto.EventItem, dto.EventItem,
		dto.EventBatchSaved, dto.EventBatchSaved, dto.EventBatchSaved,
		dto.EventComplete,
	}
	if len(types) != len(want) {
		t.Fatalf("event types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("event %d = %s, want %s (full: %v)", i, types[i], want[i], types)
		}
	}

	// Stage statuses in order
	stages := []string{events[0].Stage, events[1].Stage, events[2].Stage}
	wantStages := []string{dto.StageParsingPdf, dto.StageExtracting, dto.StageEmbedding}
	for i := range wantStages {
		if stages[i] != wantStages[i] {
			t.Errorf("status %d = %s, want %s", i, stages[i], wantStages[i])
		}
	}

	// Item indexes ascend, progress counts up to the fixed total
	for i, event := range events[3:10] {
		if event.Index != i {
			t.Errorf("item %d index = %d", i, event.Index)
		}
		if event.Progress == nil || event.Progress.Current != i+1 || event.Progress.Total != 7 {
			t.Errorf("item %d progress = %+v", i, event.Progress)
		}
	}

	// Batch sizes 3, 3, 1
	wantSizes := []int{3, 3, 1}
	for i, event := range events[10:13] {
		if len(event.ChunkIds) != wantSizes[i] {
			t.Errorf("batch %d ids = %d, want %d", i, len(event.ChunkIds), wantSizes[i])
		}
	}

	if events[13].Count != 7 {
		t.Errorf("complete count = %d, want 7", events[13].Count)
	}

	if outlines.replaced == nil || len(outlines.replaced.Sections) != 2 {
		t.Errorf("outline not replaced with 2 sections: %+v", outlines.replaced)
	}
	if len(notifier.courseIds) != 1 || notifier.courseIds[0] != courseId {
		t.Errorf("notifier calls = %v", notifier.courseIds)
	}

	wantStatuses := []string{entity.DocumentStatusProcessing, entity.DocumentStatusComplete}
	if len(statuses.statuses) != 2 || statuses.statuses[0] != wantStatuses[0] || statuses.statuses[1] != wantStatuses[1] {
		t.Errorf("statuses = %v, want %v", statuses.statuses, wantStatuses)
	}
}

func TestOrchestratorEmptyDocumentSkipsModel(t *testing.T) {
	text := &fakeTextExtractor{pages: nil}
	sections := &fakeSectionExtractor{}
	statuses := &fakeStatusStore{}

	orchestrator := newTestOrchestrator(text, sections, &fakeChunkStore{}, &fakeOutlineStore{}, statuses, &fakeNotifier{})

	events := collect(orchestrator.Run(context.Background(), uuid.New(), uuid.New(), []byte("scan")))

	if sections.calls != 0 {
		t.Errorf("model called %d times for empty document", sections.calls)
	}
	last := events[len(events)-1]
	if last.Type != dto.EventError {
		t.Errorf("last event = %s, want error", last.Type)
	}
	if statuses.statuses[len(statuses.statuses)-1] != entity.DocumentStatusError {
		t.Errorf("final status = %v, want error", statuses.statuses)
	}
}

func TestOrchestratorZeroSectionsCompletesWithZeroItems(t *testing.T) {
	text := &fakeTextExtractor{pages: []extract.Page{{Page: 1, Text: "garbled"}}}
	sections := &fakeSectionExtractor{sections: nil}
	statuses := &fakeStatusStore{}

	orchestrator := newTestOrchestrator(text, sections, &fakeChunkStore{}, &fakeOutlineStore{}, statuses, &fakeNotifier{})

	events := collect(orchestrator.Run(context.Background(), uuid.New(), uuid.New(), []byte("pdf")))

	last := events[len(events)-1]
	if last.Type != dto.EventComplete || last.Count != 0 {
		t.Errorf("last event = %+v, want complete with 0 items", last)
	}
	if statuses.statuses[len(statuses.statuses)-1] != entity.DocumentStatusComplete {
		t.Errorf("final status = %v, want complete", statuses.statuses)
	}
}

func TestOrchestratorExtractionErrorEndsStream(t *testing.T) {
	text := &fakeTextExtractor{pages: []extract.Page{{Page: 1, Text: "lecture"}}}
	sections := &fakeSectionExtractor{err: errors.New("model unreachable")}
	statuses := &fakeStatusStore{}

	orchestrator := newTestOrchestrator(text, sections, &fakeChunkStore{}, &fakeOutlineStore{}, statuses, &fakeNotifier{})

	events := collect(orchestrator.Run(context.Background(), uuid.New(), uuid.New(), []byte("pdf")))

	last := events[len(events)-1]
	if last.Type != dto.EventError {
		t.Errorf("last event = %s, want error", last.Type)
	}
	if statuses.statuses[len(statuses.statuses)-1] != entity.DocumentStatusError {
		t.Errorf("final status = %v, want error", statuses.statuses)
	}
}

func TestOrchestratorReRunWritesSameChunkIds(t *testing.T) {
	documentId, courseId := uuid.New(), uuid.New()

	runOnce := func() map[uuid.UUID]bool {
		chunks := &fakeChunkStore{}
		orchestrator := newTestOrchestrator(
			&fakeTextExtractor{pages: []extract.Page{{Page: 1, Text: "lecture"}}},
			&fakeSectionExtractor{sections: sectionsWithPoints(2, 2)},
			chunks, &fakeOutlineStore{}, &fakeStatusStore{}, &fakeNotifier{},
		)
		collect(orchestrator.Run(context.Background(), documentId, courseId, []byte("pdf")))

		ids := make(map[uuid.UUID]bool)
		for _, batch := range chunks.batches {
			for _, chunk := range batch {
				ids[chunk.Id] = true
			}
		}
		return ids
	}

	first := runOnce()
	second := runOnce()

	if len(first) != 4 || len(second) != 4 {
		t.Fatalf("chunk counts = %d and %d, want 4", len(first), len(second))
	}
	for id := range first {
		if !second[id] {
			t.Errorf("chunk %s missing from second run", id)
		}
	}
}
