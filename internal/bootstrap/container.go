package bootstrap

import (
	"curio-be/internal/config"
	"curio-be/internal/controller"
	"curio-be/internal/pkg/logger"
	"curio-be/internal/repository/memory"
	"curio-be/internal/service"
	"curio-be/pkg/aggregate"
	"curio-be/pkg/enrich"
	"curio-be/pkg/rewriter"
	"curio-be/pkg/simplify"
	"curio-be/pkg/wiki"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. External Clients
	wikiClient := wiki.NewClient(wiki.Config{
		APIBase:        cfg.Wiki.APIBase,
		RESTBase:       cfg.Wiki.RESTBase,
		SimpleAPIBase:  cfg.Wiki.SimpleAPIBase,
		SimpleRESTBase: cfg.Wiki.SimpleRESTBase,
		RelatedBase:    cfg.Wiki.RelatedBase,
		UserAgent:      cfg.Wiki.UserAgent,
	})
	rewriterClient := rewriter.NewClient(cfg.Rewriter.BaseURL)

	// 4. Domain Components
	aggregator := aggregate.New(wikiClient, cfg.Limits.QuestionCap, cfg.Limits.SuggestionChips)
	resolver := enrich.New(wikiClient, cfg.Limits.MediaCap)
	chain := simplify.NewChain(rewriterClient, service.NewSimpleWikiSource(wikiClient))

	// 5. Services
	sessionRepo := memory.NewSessionRepository()
	publisherService := service.NewPublisherService(cfg.App.PrefetchTopicName, pubSub)
	sessionService := service.NewSessionService(
		sessionRepo,
		wikiClient,
		aggregator,
		resolver,
		chain,
		publisherService,
		sysLogger,
		cfg.Limits.PrefetchCount,
	)
	consumerService := service.NewConsumerService(pubSub, cfg.App.PrefetchTopicName, sessionService)

	// 6. Controllers
	sessionController := controller.NewSessionController(sessionService, cfg.Limits.SuggestionChips)

	return &Container{
		SessionController: sessionController,
		ConsumerService:   consumerService,
		Logger:            sysLogger,
	}
}
