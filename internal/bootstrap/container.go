package bootstrap

import (
	"context"
	"log"

	"github.com/Nix128/asisten-pengawasan-apip/internal/config"
	"github.com/Nix128/asisten-pengawasan-apip/internal/controller"
	"github.com/Nix128/asisten-pengawasan-apip/internal/pkg/logger"
	"github.com/Nix128/asisten-pengawasan-apip/internal/pkg/serverutils"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/unitofwork"
	"github.com/Nix128/asisten-pengawasan-apip/internal/service"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/embedding"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/extract"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/genai"
	pktNats "github.com/Nix128/asisten-pengawasan-apip/pkg/nats"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/storage"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/tika"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/websearch"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	ChatController      controller.IChatController
	DocumentController  controller.IDocumentController
	KnowledgeController controller.IKnowledgeController
	HistoryController   controller.IHistoryController

	// Background services (dijalankan main.go)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus (internal, in-process)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Klien eksternal
	generator := genai.NewGeminiClient(genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.ChatModel,
		Timeout: cfg.Gemini.Timeout,
	})
	embeddingProvider := embedding.NewGeminiProvider(embedding.GeminiProviderConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.EmbeddingModel,
		Timeout: cfg.Gemini.Timeout,
	})
	searcher := websearch.NewGoogleSearchClient(websearch.GoogleSearchConfig{
		APIKey:   cfg.Search.APIKey,
		EngineID: cfg.Search.EngineID,
		Timeout:  cfg.Search.Timeout,
	})
	tikaClient := tika.NewClient(tika.Config{
		ServerURL: cfg.Tika.ServerURL,
		Timeout:   cfg.Tika.Timeout,
	})
	extractor := extract.NewExtractor(tikaClient)

	objectStorage, err := storage.NewObjectStorage(context.Background(), storage.MinioConfig{
		Endpoint:        cfg.Storage.Endpoint,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		BucketName:      cfg.Storage.BucketName,
		UseSSL:          cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object storage: %v", err)
	}

	// NATS publisher untuk event audit. Gagal connect bukan fatal.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestTopic,
		uowFactory,
		embeddingProvider,
	)

	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry, natsPub, sysLogger)
	chatService := service.NewChatService(uowFactory, generator, searcher, natsPub, sysLogger)
	documentService := service.NewDocumentService(
		uowFactory,
		objectStorage,
		extractor,
		embeddingProvider,
		publisherService,
		natsPub,
		cfg.Storage.UploadURLExpiry,
		sysLogger,
	)
	knowledgeService := service.NewKnowledgeService(uowFactory, embeddingProvider)
	historyService := service.NewHistoryService(uowFactory, generator, embeddingProvider, sysLogger)

	// 5. Controllers. Middleware JWT memakai secret yang sama dengan yang
	// dipakai auth service untuk menandatangani token.
	jwtMiddleware := serverutils.JwtMiddleware(cfg.Auth.JWTSecret)

	return &Container{
		AuthController:      controller.NewAuthController(authService),
		ChatController:      controller.NewChatController(chatService),
		DocumentController:  controller.NewDocumentController(documentService, jwtMiddleware),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService, jwtMiddleware),
		HistoryController:   controller.NewHistoryController(historyService),
		ConsumerService:     consumerService,
		Logger:              sysLogger,
	}
}
