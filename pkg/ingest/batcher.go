package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"studyvault-be/internal/entity"
	"studyvault-be/internal/pkg/logger"
	"studyvault-be/pkg/ai/extractor"
)

// BatchSize balances write amplification against latency to first
// feedback for the caller.
const BatchSize = 3

// Item is one flattened knowledge point queued for persistence, carrying
// its section context and its position in the document-wide ordering.
type Item struct {
	Index   int
	Section extractor.Section
	Point   extractor.KnowledgePoint
}

// BatchPersister turns knowledge points into embedded chunks and writes
// them in fixed-size batches. A failed batch is reported and skipped;
// later batches still run, so partial success is a valid outcome.
type BatchPersister struct {
	chunks   ChunkStore
	embedder Embedder
	logger   logger.ILogger
}

func NewBatchPersister(chunks ChunkStore, embedder Embedder, logger logger.ILogger) *BatchPersister {
	return &BatchPersister{
		chunks:   chunks,
		embedder: embedder,
		logger:   logger,
	}
}

// ChunkId derives a stable chunk id from the document and the item's
// position, so re-ingesting the same document overwrites its chunks
// instead of accumulating duplicates.
func ChunkId(documentId uuid.UUID, index int) uuid.UUID {
	return uuid.NewSHA1(documentId, []byte(fmt.Sprintf("chunk-%d", index)))
}

// Persist writes the items in batches, emitting a batch_saved event per
// committed batch and an error event per failed one. Returns the number
// of items that reached storage; a false second return means the caller
// went away mid-stream.
func (p *BatchPersister) Persist(ctx context.Context, documentId uuid.UUID, items []Item, streamer *Streamer) (int, bool) {
	saved := 0

	for start := 0; start < len(items); start += BatchSize {
		end := start + BatchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]

		chunks, err := p.buildBatch(ctx, documentId, batch)
		if err == nil {
			err = p.chunks.UpsertBatch(ctx, chunks)
		}
		if err != nil {
			p.logger.Error("BatchPersister.Persist", "batch failed", map[string]interface{}{
				"document_id": documentId.String(),
				"batch_start": start,
				"error":       err.Error(),
			})
			if !streamer.Error(ctx, fmt.Sprintf("failed to save batch starting at item %d", start)) {
				return saved, false
			}
			continue
		}

		ids := make([]uuid.UUID, len(chunks))
		for i, chunk := range chunks {
			ids[i] = chunk.Id
		}
		saved += len(chunks)

		if !streamer.BatchSaved(ctx, ids) {
			return saved, false
		}
	}

	return saved, true
}

func (p *BatchPersister) buildBatch(ctx context.Context, documentId uuid.UUID, batch []Item) ([]*entity.Chunk, error) {
	chunks := make([]*entity.Chunk, 0, len(batch))
	for _, item := range batch {
		content := fmt.Sprintf("%s\n\n%s", item.Point.Title, item.Point.Content)
		embedding, err := p.embedder.Embed(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("embed item %d: %w", item.Index, err)
		}

		chunks = append(chunks, &entity.Chunk{
			Id:         ChunkId(documentId, item.Index),
			DocumentId: documentId,
			Content:    content,
			Metadata: entity.ChunkMetadata{
				Title:       item.Point.Title,
				KeyConcepts: item.Point.KeyConcepts,
				KeyFormulas: item.Point.KeyFormulas,
				Examples:    item.Point.Examples,
				SourcePages: item.Point.SourcePages,
			},
			EmbeddingValue: embedding,
		})
	}
	return chunks, nil
}
