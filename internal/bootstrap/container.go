package bootstrap

import (
	"knowledge-chatbot-be/internal/config"
	"knowledge-chatbot-be/internal/controller"
	"knowledge-chatbot-be/internal/pkg/logger"
	"knowledge-chatbot-be/internal/repository/memory"
	"knowledge-chatbot-be/internal/service"
	"knowledge-chatbot-be/pkg/assistant"
	"knowledge-chatbot-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	SessionController  controller.ISessionController
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	api := assistant.NewClient(
		cfg.Assistant.BaseURL,
		cfg.Assistant.APIKey,
		cfg.Assistant.PollInterval,
		cfg.Assistant.RunTimeout,
	)

	files := storage.NewManager(cfg.Chat.UploadBaseDir)
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.PurgeInterval)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	publisherService := service.NewPublisherService(pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		sysLogger,
		cfg.Chat.IngestedTopic,
		cfg.Chat.ExchangedTopic,
	)

	// 3. Services
	sessionService := service.NewSessionService(sessionRepo, files, api, cfg, sysLogger)
	documentService := service.NewDocumentService(
		sessionService,
		sessionRepo,
		files,
		api,
		publisherService,
		cfg.Chat.IngestedTopic,
		sysLogger,
	)
	chatService := service.NewChatService(
		sessionService,
		sessionRepo,
		api,
		publisherService,
		cfg.Chat.ExchangedTopic,
		cfg.Chat.MeetingMinutesPath,
		cfg.Chat.ExportDir,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		SessionController:  controller.NewSessionController(sessionService, cfg.Session.TTL),
		DocumentController: controller.NewDocumentController(documentService),
		ChatController:     controller.NewChatController(chatService),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}
