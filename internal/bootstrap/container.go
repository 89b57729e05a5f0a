package bootstrap

import (
	"context"
	"log"
	"time"

	"studyvault-be/internal/config"
	"studyvault-be/internal/controller"
	"studyvault-be/internal/pkg/logger"
	"studyvault-be/internal/repository/memory"
	"studyvault-be/internal/repository/unitofwork"
	"studyvault-be/internal/service"
	"studyvault-be/pkg/ai/extractor"
	"studyvault-be/pkg/embedding"
	"studyvault-be/pkg/extract"
	"studyvault-be/pkg/ingest"
	"studyvault-be/pkg/llm/factory"
	"studyvault-be/pkg/outline"
	"studyvault-be/pkg/quota"

	pktNats "studyvault-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController   controller.IDocumentController
	CourseController     controller.ICourseController
	UniversityController controller.IUniversityController
	UsageController      controller.IUsageController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	referenceCache := memory.NewReferenceCache(time.Duration(cfg.Quota.CacheTTLSeconds) * time.Second)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 5. Pipeline Components
	publisherService := service.NewPublisherService(cfg.Keys.RegenerateTopic, pubSub)

	stores := service.NewRepositoryStores(uowFactory)
	embedder := service.NewProviderEmbedder(embeddingProvider)
	notifier := service.NewRegenerateNotifier(publisherService)

	textExtractor := extract.NewPDFExtractor()
	sectionExtractor := extractor.NewStructuredExtractor(llmProvider, sysLogger)
	persister := ingest.NewBatchPersister(stores, embedder, sysLogger)
	orchestrator := ingest.NewOrchestrator(
		textExtractor,
		sectionExtractor,
		persister,
		stores,
		stores,
		notifier,
		sysLogger,
	)

	gate := quota.NewGate(
		quota.NewRedisCounter(rdb),
		service.NewUserPlanSource(uowFactory),
		cfg.Quota,
		sysLogger,
	)

	aggregator := outline.NewAggregator(
		outlineSource{uowFactory},
		aggregateStore{uowFactory},
		service.NewCacheInvalidator(referenceCache, uowFactory),
		sysLogger,
	)
	regenerator := service.NewEventedRegenerator(aggregator, uowFactory, natsPub)

	// 6. Services
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.RegenerateTopic, regenerator)

	documentService := service.NewDocumentService(
		uowFactory,
		gate,
		orchestrator,
		embeddingProvider,
		publisherService,
		natsPub,
	)
	courseService := service.NewCourseService(uowFactory, publisherService, referenceCache)
	universityService := service.NewUniversityService(uowFactory, referenceCache)
	usageService := service.NewUsageService(gate, cfg.Quota)

	// 7. Controllers
	return &Container{
		DocumentController:   controller.NewDocumentController(documentService, cfg.Quota.MaxFileSizeMB),
		CourseController:     controller.NewCourseController(courseService),
		UniversityController: controller.NewUniversityController(universityService),
		UsageController:      controller.NewUsageController(usageService),
		ConsumerService:      consumerService,
	}
}
