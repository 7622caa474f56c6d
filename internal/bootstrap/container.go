package bootstrap

import (
	"context"
	"log"

	"scent-advisor-be/internal/config"
	"scent-advisor-be/internal/controller"
	"scent-advisor-be/internal/pkg/logger"
	"scent-advisor-be/internal/pkg/ratelimit"
	"scent-advisor-be/internal/pkg/serverutils"
	"scent-advisor-be/internal/repository/memory"
	"scent-advisor-be/internal/repository/unitofwork"
	"scent-advisor-be/internal/service"
	"scent-advisor-be/pkg/events"

	pktNats "scent-advisor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AdvisorController controller.IAdvisorController
	CatalogController controller.ICatalogController

	// Middleware
	ChatRateLimit fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	recoLogger := logger.NewIsolatedLogger("logs/recommendation.log")

	// 2. Event Bus (in-process)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// NATS
	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, cfg.Advisor.EventSubjectPrefix)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
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
		log.Printf("[WARN] Failed to connect to Redis: %v (rate limiting fails open)", err)
	}

	// 4. Services
	catalogCache := memory.NewCatalogCache(cfg.Advisor.CatalogCacheTTL)
	catalogService := service.NewCatalogService(uowFactory, catalogCache, sysLogger)

	publisherService := service.NewPublisherService(cfg.Advisor.RecommendationTopic, pubSub)
	consumerService := service.NewRecommendationLogConsumer(
		pubSub,
		cfg.Advisor.RecommendationTopic,
		uowFactory,
		recoLogger,
		service.WithRetryPolicy(cfg.Advisor.LogMaxAttempts, cfg.Advisor.LogRetryDelay),
	)

	advisorService := service.NewAdvisorService(
		uowFactory,
		catalogService,
		publisherService,
		eventPublisher,
		sysLogger,
		cfg.Advisor.DefaultLocale,
	)

	limiter := ratelimit.NewSlidingWindow(rdb, cfg.Advisor.RateLimitRequests, cfg.Advisor.RateLimitWindow)

	closers := []func(){
		func() { _ = pubSub.Close() },
		func() { _ = rdb.Close() },
		func() { _ = recoLogger.Sync() },
		func() { _ = sysLogger.Sync() },
	}
	if natsPub != nil {
		closers = append(closers, natsPub.Close)
	}

	// 5. Controllers
	return &Container{
		AdvisorController: controller.NewAdvisorController(advisorService),
		CatalogController: controller.NewCatalogController(catalogService),
		ChatRateLimit:     serverutils.RateLimitMiddleware(limiter, sysLogger),
		ConsumerService:   consumerService,
		Logger:            sysLogger,
		closers:           closers,
	}
}

// Close releases the event buses, the Redis client and flushes the loggers.
func (c *Container) Close() {
	for _, closeFn := range c.closers {
		closeFn()
	}
}
