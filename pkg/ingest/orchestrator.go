package ingest

import (
	"context"

	"github.com/google/uuid"

	"studyvault-be/internal/dto"
	"studyvault-be/internal/entity"
	"studyvault-be/internal/pkg/logger"
	"studyvault-be/pkg/ai/extractor"
	"studyvault-be/pkg/extract"
)

// SectionExtractor is the slice of the structured extractor the
// orchestrator depends on.
type SectionExtractor interface {
	Extract(ctx context.Context, pages []extract.Page) ([]extractor.Section, error)
}

// Persister is the slice of the batch persister the orchestrator drives.
type Persister interface {
	Persist(ctx context.Context, documentId uuid.UUID, items []Item, streamer *Streamer) (int, bool)
}

// Orchestrator owns the per-document pipeline: text extraction, model
// structuring, batched persistence, outline replacement and the progress
// stream. It is the only component that knows all the stages.
type Orchestrator struct {
	text      extract.TextExtractor
	sections  SectionExtractor
	persister Persister
	outlines  OutlineStore
	documents DocumentStatusStore
	notifier  OutlineNotifier
	logger    logger.ILogger
}

func NewOrchestrator(
	text extract.TextExtractor,
	sections SectionExtractor,
	persister Persister,
	outlines OutlineStore,
	documents DocumentStatusStore,
	notifier OutlineNotifier,
	logger logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		text:      text,
		sections:  sections,
		persister: persister,
		outlines:  outlines,
		documents: documents,
		notifier:  notifier,
		logger:    logger,
	}
}

// Run starts the pipeline for one uploaded document and returns its event
// stream. The channel is closed after the terminal event. Re-running with
// the same document id is idempotent because chunk ids are deterministic
// and outline writes are full replaces.
func (o *Orchestrator) Run(ctx context.Context, documentId, courseId uuid.UUID, data []byte) <-chan dto.IngestEvent {
	streamer := NewStreamer()
	go o.run(ctx, documentId, courseId, data, streamer)
	return streamer.Events()
}

func (o *Orchestrator) run(ctx context.Context, documentId, courseId uuid.UUID, data []byte, streamer *Streamer) {
	defer streamer.Close()

	machine := NewStateMachine()

	// Status writes survive a caller disconnect so the document is never
	// stranded in processing.
	persistCtx := context.WithoutCancel(ctx)

	if !streamer.Status(ctx, machine.Stage()) {
		return
	}
	o.setStatus(persistCtx, documentId, entity.DocumentStatusProcessing)

	pages, err := o.text.Extract(data)
	if err != nil {
		o.fail(ctx, persistCtx, streamer, documentId, "failed to read document text")
		return
	}
	if len(pages) == 0 {
		// Image-only or empty documents never reach the model
		o.fail(ctx, persistCtx, streamer, documentId, "document contains no extractable text")
		return
	}

	if err := machine.Advance(dto.StageExtracting); err != nil {
		o.fail(ctx, persistCtx, streamer, documentId, "internal pipeline error")
		return
	}
	if !streamer.Status(ctx, machine.Stage()) {
		return
	}

	sections, err := o.sections.Extract(ctx, pages)
	if err != nil {
		o.logger.Error("Orchestrator.run", "structured extraction failed", map[string]interface{}{
			"document_id": documentId.String(),
			"error":       err.Error(),
		})
		o.fail(ctx, persistCtx, streamer, documentId, "content extraction failed")
		return
	}

	items := flatten(sections)
	streamer.SetTotal(len(items))

	if err := machine.Advance(dto.StageEmbedding); err != nil {
		o.fail(ctx, persistCtx, streamer, documentId, "internal pipeline error")
		return
	}
	if !streamer.Status(ctx, machine.Stage()) {
		return
	}

	for _, item := range items {
		payload := &dto.KnowledgePointPayload{
			Title:       item.Point.Title,
			Content:     item.Point.Content,
			Section:     item.Section.Title,
			SourcePages: item.Point.SourcePages,
			KeyConcepts: item.Point.KeyConcepts,
		}
		if !streamer.Item(ctx, item.Index, payload) {
			return
		}
	}

	saved, alive := o.persister.Persist(ctx, documentId, items, streamer)
	if !alive {
		return
	}
	if saved < len(items) {
		o.logger.Warn("Orchestrator.run", "some batches failed", map[string]interface{}{
			"document_id": documentId.String(),
			"saved":       saved,
			"total":       len(items),
		})
	}

	if err := o.outlines.Replace(persistCtx, buildOutline(documentId, courseId, sections)); err != nil {
		o.logger.Error("Orchestrator.run", "outline replace failed", map[string]interface{}{
			"document_id": documentId.String(),
			"error":       err.Error(),
		})
	} else if o.notifier != nil {
		if err := o.notifier.OutlineChanged(persistCtx, courseId); err != nil {
			o.logger.Warn("Orchestrator.run", "outline change notification failed", map[string]interface{}{
				"course_id": courseId.String(),
				"error":     err.Error(),
			})
		}
	}

	if err := machine.Advance(dto.StageComplete); err != nil {
		o.fail(ctx, persistCtx, streamer, documentId, "internal pipeline error")
		return
	}
	o.setStatus(persistCtx, documentId, entity.DocumentStatusComplete)
	streamer.Complete(ctx, len(items))
}

func (o *Orchestrator) fail(ctx, persistCtx context.Context, streamer *Streamer, documentId uuid.UUID, message string) {
	o.setStatus(persistCtx, documentId, entity.DocumentStatusError)
	streamer.Error(ctx, message)
}

func (o *Orchestrator) setStatus(ctx context.Context, documentId uuid.UUID, status string) {
	if err := o.documents.UpdateStatus(ctx, documentId, status); err != nil {
		o.logger.Warn("Orchestrator.setStatus", "status update failed", map[string]interface{}{
			"document_id": documentId.String(),
			"status":      status,
			"error":       err.Error(),
		})
	}
}

// flatten assigns a document-wide index to every knowledge point, in
// model-assigned section order.
func flatten(sections []extractor.Section) []Item {
	var items []Item
	index := 0
	for _, section := range sections {
		for _, point := range section.KnowledgePoints {
			items = append(items, Item{
				Index:   index,
				Section: section,
				Point:   point,
			})
			index++
		}
	}
	return items
}

func buildOutline(documentId, courseId uuid.UUID, sections []extractor.Section) *entity.DocumentOutline {
	outlineSections := make([]entity.OutlineSection, 0, len(sections))
	for _, section := range sections {
		titles := make([]string, 0, len(section.KnowledgePoints))
		for _, point := range section.KnowledgePoints {
			titles = append(titles, point.Title)
		}
		outlineSections = append(outlineSections, entity.OutlineSection{
			Title:           section.Title,
			Summary:         section.Summary,
			KnowledgePoints: titles,
		})
	}
	return &entity.DocumentOutline{
		Id:         uuid.New(),
		DocumentId: documentId,
		CourseId:   courseId,
		Sections:   outlineSections,
	}
}
