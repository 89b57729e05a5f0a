package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studyvault-be/internal/dto"
	"studyvault-be/internal/entity"
	"studyvault-be/internal/repository/specification"
	"studyvault-be/internal/repository/unitofwork"
	"studyvault-be/pkg/embedding"
	"studyvault-be/pkg/events"
	pktNats "studyvault-be/pkg/nats"
	"studyvault-be/pkg/quota"
)

const (
	searchResultLimit   = 10
	similarityThreshold = 0.5
)

// DocumentPipeline is the ingestion orchestrator as seen from the service
// layer.
type DocumentPipeline interface {
	Run(ctx context.Context, documentId, courseId uuid.UUID, data []byte) <-chan dto.IngestEvent
}

type IDocumentService interface {
	// Ingest runs the pipeline for one uploaded file and returns its event
	// stream. A nil channel with a nil error means the course was not found.
	Ingest(ctx context.Context, userId, courseId uuid.UUID, filename string, data []byte) (<-chan dto.IngestEvent, error)
	GetAllByCourse(ctx context.Context, userId, courseId uuid.UUID) ([]*dto.DocumentResponse, error)
	Delete(ctx context.Context, userId, documentId uuid.UUID) error
	SemanticSearch(ctx context.Context, userId, courseId uuid.UUID, query string) ([]*dto.SemanticSearchResponse, error)
}

type documentService struct {
	uowFactory        unitofwork.RepositoryFactory
	gate              *quota.Gate
	pipeline          DocumentPipeline
	embeddingProvider embedding.EmbeddingProvider
	publisherService  IPublisherService
	eventPublisher    *pktNats.Publisher
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	gate *quota.Gate,
	pipeline DocumentPipeline,
	embeddingProvider embedding.EmbeddingProvider,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IDocumentService {
	return &documentService{
		uowFactory:        uowFactory,
		gate:              gate,
		pipeline:          pipeline,
		embeddingProvider: embeddingProvider,
		publisherService:  publisherService,
		eventPublisher:    eventPublisher,
	}
}

func (c *documentService) Ingest(ctx context.Context, userId, courseId uuid.UUID, filename string, data []byte) (<-chan dto.IngestEvent, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil // Not found
	}

	// Quota is spent before any pipeline work so a rejected request has
	// no partial state and no opened stream.
	if err := c.gate.Enforce(ctx, userId); err != nil {
		return nil, err
	}

	document := entity.Document{
		Id:        uuid.New(),
		UserId:    userId,
		CourseId:  courseId,
		Filename:  filename,
		Type:      "pdf",
		Status:    entity.DocumentStatusPending,
		CreatedAt: time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	upstream := c.pipeline.Run(ctx, document.Id, courseId, data)

	// Relay the stream so the completion event can be observed for the
	// lifecycle bus without the pipeline knowing about NATS.
	relayed := make(chan dto.IngestEvent)
	go func() {
		defer close(relayed)
		for event := range upstream {
			if event.Type == dto.EventComplete && c.eventPublisher != nil {
				evt := events.DocumentIngested(document.Id, courseId, event.Count)
				// Notification is auxiliary, never fail the stream
				if err := c.eventPublisher.Publish(ctx, evt); err != nil {
					fmt.Printf("[WARN] Failed to publish DOCUMENT_INGESTED event: %v\n", err)
				}
			}
			select {
			case relayed <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return relayed, nil
}

func (c *documentService) GetAllByCourse(ctx context.Context, userId, courseId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByCourse{CourseID: courseId},
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.DocumentResponse, 0, len(documents))
	for _, document := range documents {
		response = append(response, &dto.DocumentResponse{
			Id:        document.Id,
			CourseId:  document.CourseId,
			Filename:  document.Filename,
			Type:      document.Type,
			Status:    document.Status,
			CreatedAt: document.CreatedAt,
		})
	}
	return response, nil
}

func (c *documentService) Delete(ctx context.Context, userId, documentId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if document == nil {
		return nil // Already gone
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChunkRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}
	if err := uow.OutlineRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, documentId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	// The course aggregate must be rebuilt without this document
	payload, err := json.Marshal(dto.RegenerateOutlineMessage{CourseId: document.CourseId})
	if err == nil {
		if err := c.publisherService.Publish(ctx, payload); err != nil {
			fmt.Printf("[WARN] Failed to queue outline regeneration: %v\n", err)
		}
	}

	if c.eventPublisher != nil {
		evt := events.DocumentDeleted(documentId, document.CourseId)
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish DOCUMENT_DELETED event: %v\n", err)
		}
	}

	return nil
}

func (c *documentService) SemanticSearch(ctx context.Context, userId, courseId uuid.UUID, query string) ([]*dto.SemanticSearchResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	res, err := c.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}

	scored, err := uow.ChunkRepository().SearchSimilarWithScore(
		ctx,
		res.Embedding.Values,
		searchResultLimit,
		courseId,
		similarityThreshold,
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.SemanticSearchResponse, 0, len(scored))
	for _, sc := range scored {
		response = append(response, &dto.SemanticSearchResponse{
			ChunkId:        sc.Chunk.Id,
			DocumentId:     sc.Chunk.DocumentId,
			Title:          sc.Chunk.Metadata.Title,
			Content:        sc.Chunk.Content,
			SourcePages:    sc.Chunk.Metadata.SourcePages,
			RelevanceScore: sc.Similarity,
		})
	}
	return response, nil
}
