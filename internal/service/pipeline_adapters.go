package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"studyvault-be/internal/dto"
	"studyvault-be/internal/entity"
	"studyvault-be/internal/repository/memory"
	"studyvault-be/internal/repository/specification"
	"studyvault-be/internal/repository/unitofwork"
	"studyvault-be/pkg/embedding"
	"studyvault-be/pkg/events"
	pktNats "studyvault-be/pkg/nats"
)

// Adapters bridging the pipeline packages to the repository layer and the
// message bus. Each one narrows a wide dependency to the single method the
// pipeline needs.

// RepositoryStores exposes the repositories behind the pipeline's store
// interfaces, outside any transaction. Batch writes are independent, so
// each batch commits on its own.
type RepositoryStores struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewRepositoryStores(uowFactory unitofwork.RepositoryFactory) *RepositoryStores {
	return &RepositoryStores{uowFactory: uowFactory}
}

func (s *RepositoryStores) UpsertBatch(ctx context.Context, chunks []*entity.Chunk) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChunkRepository().UpsertBatch(ctx, chunks)
}

func (s *RepositoryStores) Replace(ctx context.Context, outline *entity.DocumentOutline) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.OutlineRepository().Replace(ctx, outline)
}

func (s *RepositoryStores) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentRepository().UpdateStatus(ctx, id, status)
}

// ProviderEmbedder adapts the embedding provider to the pipeline's
// Embedder interface, pinning the document-side task type.
type ProviderEmbedder struct {
	provider embedding.EmbeddingProvider
}

func NewProviderEmbedder(provider embedding.EmbeddingProvider) *ProviderEmbedder {
	return &ProviderEmbedder{provider: provider}
}

func (e *ProviderEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := e.provider.Generate(text, "RETRIEVAL_DOCUMENT")
	if err != nil {
		return nil, err
	}
	return res.Embedding.Values, nil
}

// RegenerateNotifier queues a course outline rebuild on the internal bus
// whenever a document outline changes.
type RegenerateNotifier struct {
	publisherService IPublisherService
}

func NewRegenerateNotifier(publisherService IPublisherService) *RegenerateNotifier {
	return &RegenerateNotifier{publisherService: publisherService}
}

func (n *RegenerateNotifier) OutlineChanged(ctx context.Context, courseId uuid.UUID) error {
	payload, err := json.Marshal(dto.RegenerateOutlineMessage{CourseId: courseId})
	if err != nil {
		return err
	}
	return n.publisherService.Publish(ctx, payload)
}

// UserPlanSource resolves plans from the users table. Unknown users fall
// back to the free plan rather than failing the gate.
type UserPlanSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserPlanSource(uowFactory unitofwork.RepositoryFactory) *UserPlanSource {
	return &UserPlanSource{uowFactory: uowFactory}
}

func (s *UserPlanSource) PlanFor(ctx context.Context, userId uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return "", err
	}
	if user == nil {
		return entity.PlanFree, nil
	}
	return user.Plan, nil
}

// EventedRegenerator decorates the outline aggregator with a lifecycle
// event on the external bus.
type EventedRegenerator struct {
	inner          OutlineRegenerator
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewEventedRegenerator(inner OutlineRegenerator, uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) *EventedRegenerator {
	return &EventedRegenerator{
		inner:          inner,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (r *EventedRegenerator) Regenerate(ctx context.Context, courseId uuid.UUID) error {
	if err := r.inner.Regenerate(ctx, courseId); err != nil {
		return err
	}
	if r.eventPublisher == nil {
		return nil
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	topicCount := 0
	if aggregate, err := uow.CourseOutlineRepository().FindByCourseId(ctx, courseId); err == nil && aggregate != nil {
		topicCount = len(aggregate.Topics)
	}
	if err := r.eventPublisher.Publish(ctx, events.CourseOutlineRebuilt(courseId, topicCount)); err != nil {
		fmt.Printf("[WARN] Failed to publish COURSE_OUTLINE_REBUILT event: %v\n", err)
	}
	return nil
}

// CacheInvalidator drops course-derived cache entries when an aggregate
// is rebuilt.
type CacheInvalidator struct {
	cache      *memory.ReferenceCache
	uowFactory unitofwork.RepositoryFactory
}

func NewCacheInvalidator(cache *memory.ReferenceCache, uowFactory unitofwork.RepositoryFactory) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, uowFactory: uowFactory}
}

func (c *CacheInvalidator) InvalidateCourse(courseId uuid.UUID) {
	uow := c.uowFactory.NewUnitOfWork(context.Background())
	course, err := uow.CourseRepository().FindOne(context.Background(), specification.ByID{ID: courseId})
	if err != nil || course == nil {
		return
	}
	c.cache.Invalidate(memory.CoursesKey(course.UniversityId))
}
