package bootstrap

import (
	"context"
	"log"

	"brainmode-be/internal/config"
	"brainmode-be/internal/controller"
	"brainmode-be/internal/pkg/logger"
	"brainmode-be/internal/repository/contract"
	"brainmode-be/internal/repository/memory"
	"brainmode-be/internal/repository/redisstore"
	"brainmode-be/internal/service"
	"brainmode-be/internal/websocket"
	"brainmode-be/pkg/brain/palette"
	"brainmode-be/pkg/events"
	pktNats "brainmode-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	ContextController controller.IContextController
	ContextService    service.IContextService

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	StreamHub       *websocket.Hub

	Logger    logger.ILogger
	Messenger *logger.Messenger

	closers []func()
}

func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	messenger := logger.NewMessenger(sysLogger)

	c := &Container{
		Logger:    sysLogger,
		Messenger: messenger,
	}

	rdb := c.redisClient(cfg)
	repo := c.contextRepository(cfg, rdb)

	// Live view events for editors, relayed across instances through redis when present
	c.StreamHub = websocket.NewHub(rdb, sysLogger)

	// Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	publishers := events.Fanout{
		service.NewPublisherService(cfg.Session.EventTopic, pubSub),
		c.StreamHub,
	}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			publishers = append(publishers, natsPub)
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Session.EventTopic, auditLogger)
	c.ContextService = service.NewContextService(
		repo,
		publishers,
		palette.New(palette.Scheme(cfg.Brain.ColorScheme)),
		cfg.Brain,
		sysLogger,
		messenger,
	)
	c.ContextController = controller.NewContextController(c.ContextService)

	return c
}

// redisClient returns nil when redis is not configured or not reachable.
func (c *Container) redisClient(cfg *config.Config) *redis.Client {
	if cfg.App.RedisURL == "" {
		return nil
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
		log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory context store", err)
		_ = rdb.Close()
		return nil
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return rdb
}

func (c *Container) contextRepository(cfg *config.Config, rdb *redis.Client) contract.ContextRepository {
	if rdb == nil {
		log.Printf("[INFO] Using in-memory context store (ttl %s)", cfg.Session.TTL)
		return memory.NewContextRepository(cfg.Session.TTL, cfg.Session.CleanupPeriod)
	}

	log.Printf("[INFO] Using Redis context store")
	return redisstore.NewContextRepository(rdb, cfg.Session.TTL)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
