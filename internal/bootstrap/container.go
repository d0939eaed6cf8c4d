package bootstrap

import (
	"log"

	"shop-agent-be/internal/config"
	"shop-agent-be/internal/controller"
	"shop-agent-be/internal/pkg/logger"
	"shop-agent-be/internal/repository/implementation"
	"shop-agent-be/internal/service"
	"shop-agent-be/pkg/agent"
	"shop-agent-be/pkg/embedding"
	"shop-agent-be/pkg/llm/factory"
	"shop-agent-be/pkg/shopify"
	"shop-agent-be/pkg/store"

	pktNats "shop-agent-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController
	SyncController controller.ISyncController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	embeddingRepo := implementation.NewProductEmbeddingRepository(db)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: GEMINI (%s)", cfg.Ai.EmbeddingModel)
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
	var rdb *redis.Client
	if redisOpts, err := redis.ParseURL(cfg.App.RedisURL); err != nil {
		log.Printf("[WARN] Invalid REDIS_URL, category store disabled: %v", err)
	} else {
		rdb = redis.NewClient(redisOpts)
	}
	categoryStore := store.NewCategoryStore(rdb)

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	shopifyClient := shopify.NewClient(cfg.Shopify.ShopURL, cfg.Shopify.AdminToken, cfg.Shopify.APIVersion)
	cartClient := shopify.NewCartClient(cfg.Shopify.ShopURL, cfg.Shopify.StorefrontToken, cfg.Shopify.APIVersion)
	shopDomain := shopifyClient.ShopDomain()

	// 5. Agent Graph
	searcher := service.NewProductSearchService(embeddingRepo, embeddingProvider, shopDomain)
	graph := agent.NewGraph(
		agent.NewSupervisor(llmProvider),
		agent.NewSearchAgent(llmProvider, searcher),
		agent.NewCartAgent(llmProvider, cartClient),
		agent.NewGeneralChatAgent(llmProvider),
	)

	// 6. Services
	indexerService := service.NewIndexerService(embeddingRepo, embeddingProvider, categoryStore)
	publisherService := service.NewPublisherService(cfg.Keys.SyncTopic, pubSub)
	syncService := service.NewSyncService(publisherService)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.SyncTopic, shopifyClient, cfg.Shopify.APIVersion, indexerService, natsPub, sysLogger)
	chatService := service.NewChatService(graph, shopDomain)

	// 7. Controllers
	chatController := controller.NewChatController(chatService)
	syncController := controller.NewSyncController(syncService, categoryStore, shopDomain)

	return &Container{
		ChatController:  chatController,
		SyncController:  syncController,
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
