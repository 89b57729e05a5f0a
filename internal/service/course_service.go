package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"studyvault-be/internal/dto"
	"studyvault-be/internal/entity"
	"studyvault-be/internal/repository/memory"
	"studyvault-be/internal/repository/specification"
	"studyvault-be/internal/repository/unitofwork"
)

type ICourseService interface {
	GetAllByUniversity(ctx context.Context, universityId uuid.UUID) ([]*dto.CourseResponse, error)
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	// GetOutline returns the aggregate, or nil when neither the course nor
	// its outline row exists.
	GetOutline(ctx context.Context, courseId uuid.UUID) (*dto.CourseOutlineResponse, error)
	RequestOutlineRegeneration(ctx context.Context, courseId uuid.UUID) (bool, error)
}

type courseService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	cache            *memory.ReferenceCache
}

func NewCourseService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	cache *memory.ReferenceCache,
) ICourseService {
	return &courseService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		cache:            cache,
	}
}

func (c *courseService) GetAllByUniversity(ctx context.Context, universityId uuid.UUID) ([]*dto.CourseResponse, error) {
	key := memory.CoursesKey(universityId)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]*dto.CourseResponse), nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	courses, err := uow.CourseRepository().FindAll(ctx,
		specification.ByUniversity{UniversityID: universityId},
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		response = append(response, &dto.CourseResponse{
			Id:           course.Id,
			UniversityId: course.UniversityId,
			Name:         course.Name,
			Code:         course.Code,
			CreatedAt:    course.CreatedAt,
		})
	}

	c.cache.Set(key, response)
	return response, nil
}

func (c *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	university, err := uow.UniversityRepository().FindOne(ctx, specification.ByID{ID: req.UniversityId})
	if err != nil {
		return nil, err
	}
	if university == nil {
		return nil, nil // Not found
	}

	course := entity.Course{
		Id:           uuid.New(),
		UniversityId: req.UniversityId,
		Name:         req.Name,
		Code:         req.Code,
		CreatedAt:    time.Now(),
	}
	if err := uow.CourseRepository().Create(ctx, &course); err != nil {
		return nil, err
	}

	c.cache.Invalidate(memory.CoursesKey(req.UniversityId))

	return &dto.CourseResponse{
		Id:           course.Id,
		UniversityId: course.UniversityId,
		Name:         course.Name,
		Code:         course.Code,
		CreatedAt:    course.CreatedAt,
	}, nil
}

func (c *courseService) GetOutline(ctx context.Context, courseId uuid.UUID) (*dto.CourseOutlineResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	outline, err := uow.CourseOutlineRepository().FindByCourseId(ctx, courseId)
	if err != nil {
		return nil, err
	}
	if outline == nil {
		return nil, nil // Never aggregated
	}

	response := &dto.CourseOutlineResponse{
		CourseId:    outline.CourseId,
		LastUpdated: outline.LastUpdated,
	}
	if outline.Topics != nil {
		topics := make([]dto.CourseTopicResponse, 0, len(outline.Topics))
		for _, topic := range outline.Topics {
			topics = append(topics, dto.CourseTopicResponse{
				Topic:               topic.Topic,
				Subtopics:           topic.Subtopics,
				RelatedDocuments:    topic.RelatedDocuments,
				KnowledgePointCount: topic.KnowledgePointCount,
			})
		}
		response.Topics = topics
	}
	return response, nil
}

func (c *courseService) RequestOutlineRegeneration(ctx context.Context, courseId uuid.UUID) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return false, err
	}
	if course == nil {
		return false, nil
	}

	payload, err := json.Marshal(dto.RegenerateOutlineMessage{CourseId: courseId})
	if err != nil {
		return false, err
	}
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		return false, err
	}
	return true, nil
}
