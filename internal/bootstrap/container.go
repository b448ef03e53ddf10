package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-docassist-be/internal/config"
	"ai-docassist-be/internal/controller"
	"ai-docassist-be/internal/pkg/cache"
	"ai-docassist-be/internal/pkg/logger"
	"ai-docassist-be/internal/repository/implementation"
	"ai-docassist-be/internal/repository/memory"
	"ai-docassist-be/internal/service"
	"ai-docassist-be/pkg/embedding"
	"ai-docassist-be/pkg/llm/factory"
	"ai-docassist-be/pkg/rag/answer"
	"ai-docassist-be/pkg/rag/intent"
	"ai-docassist-be/pkg/rag/retrieve"
	"ai-docassist-be/pkg/search"

	pktNats "ai-docassist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "azure" {
		embeddingProvider = embedding.NewAzureProvider(
			cfg.Ai.AzureEmbedEndpoint,
			cfg.Ai.AzureEmbedAPIKey,
			cfg.Ai.AzureEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: AZURE (%s)", cfg.Ai.AzureEmbedModel)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Document Index
	searchClient := search.NewClient(
		cfg.Search.Endpoint,
		cfg.Search.APIKey,
		cfg.Search.IndexName,
	)

	// 5. Infrastructure
	// NATS
	var eventsPub service.EventPublisher
	if natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventsPub = natsPub
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, answer cache disabled: %v", err)
		rdb = nil
	}

	answerCache := cache.NewAnswerCache(
		rdb,
		time.Duration(cfg.App.AnswerCacheTTLMin)*time.Minute,
		sysLogger,
	)

	// 6. Pipeline Components
	classifier := intent.NewClassifier(llmProvider, sysLogger)
	retriever := retrieve.NewRetriever(embeddingProvider, searchClient, sysLogger)
	synthesizer := answer.NewSynthesizer(llmProvider, sysLogger)
	conversationStore := memory.NewConversationStore()

	// 7. Services
	assistantService := service.NewAssistantService(
		classifier,
		retriever,
		synthesizer,
		conversationStore,
		answerCache,
		pubSub,
		cfg.App.AuditTopicName,
		sysLogger,
	)

	queryLogRepo := implementation.NewQueryLogRepository(db)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.AuditTopicName,
		queryLogRepo,
		eventsPub,
		sysLogger,
	)

	// 8. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService, cfg.Auth.JwtSecret),
		ConsumerService:     consumerService,
		Logger:              sysLogger,
	}
}
