package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	// Internal packages
	"github.com/seu-repo/habitua/internal/adapter/cache"
	"github.com/seu-repo/habitua/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/habitua/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/habitua/internal/adapter/id"
	"github.com/seu-repo/habitua/internal/adapter/queue"
	"github.com/seu-repo/habitua/internal/adapter/scheduler"
	"github.com/seu-repo/habitua/internal/adapter/storage/postgres"
	redisstore "github.com/seu-repo/habitua/internal/adapter/storage/redis"
	"github.com/seu-repo/habitua/internal/observability/telemetry"
	"github.com/seu-repo/habitua/internal/ports"
	"github.com/seu-repo/habitua/internal/service/catalog"
	"github.com/seu-repo/habitua/internal/service/onboarding"
	"github.com/seu-repo/habitua/internal/service/progression"
	"github.com/seu-repo/habitua/internal/service/reward"
	"github.com/seu-repo/habitua/internal/service/schedule"
	"github.com/seu-repo/habitua/pkg/config"
)

const (
	serviceName    = "habitua-engine"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Habitua Engine",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	gameRules := cfg.Game.GameRules()

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	tracerProvider, err := telemetry.InitTracer(serviceName)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// 4. Initialize Profile Store. Postgres when a database URL is
	// configured, otherwise the Redis key-value store.
	var profileStore ports.ProfileStore
	var pingDB func() error
	if cfg.Database.URL != "" {
		db, err := postgres.NewConnection(cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
		}
		defer sqlDB.Close()

		if cfg.Database.AutoMigrate {
			if err := postgres.RunMigrations(db); err != nil {
				logger.Fatal("Failed to run migrations", zap.Error(err))
			}
		}

		profileStore = postgres.NewProfileStore(db, logger)
		pingDB = sqlDB.Ping
		logger.Info("Profile store backed by PostgreSQL")
	} else {
		store, err := redisstore.NewProfileStore(cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis store", zap.Error(err))
		}
		defer store.Close()

		profileStore = store
		pingDB = func() error { return nil }
		logger.Info("Profile store backed by Redis")
	}

	// 5. Initialize Cache. In-memory fallback when Redis is absent so the
	// engine still runs fully offline against Postgres.
	var appCache ports.Cache
	if cfg.Redis.URL != "" {
		appCache, err = cache.NewRedisCache(cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
	} else {
		appCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer appCache.Close()

	// 6. Initialize Message Queue
	var messageQueue queue.MessageQueue
	if cfg.Queue.Provider == "rabbitmq" {
		messageQueue, err = queue.NewRabbitMQQueue(cfg.RabbitMQ.URL, logger)
	} else {
		messageQueue, err = queue.NewNATSQueue(cfg.NATS.URL, logger)
	}
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer messageQueue.Close()

	// 7. Initialize Shared Adapters
	idGen := id.New()
	timers := scheduler.New()

	// 8. Initialize Services (Business Logic Layer)
	catalogService := catalog.NewService(gameRules, idGen, logger)
	scheduleService := schedule.NewService(profileStore, appCache, logger)
	rewardService := reward.NewService(gameRules, idGen, timers, messageQueue, logger)
	progressionService := progression.NewService(profileStore, rewardService, messageQueue, logger)
	onboardingService := onboarding.NewService(catalogService, profileStore, gameRules, idGen, timers, messageQueue, logger)

	// 9. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.NewCORS(cfg.CORS))
	app.Use(middleware.CircuitBreaker())

	// Health Check Endpoints
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := pingDB(); err != nil {
			return c.Status(503).SendString("Database not ready")
		}
		if err := appCache.Ping(); err != nil {
			return c.Status(503).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// API v1 Routes
	v1 := app.Group("/api/v1")

	// Catalog routes
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger)
	v1.Get("/catalog/archetypes", catalogHandler.ListArchetypes)
	v1.Get("/catalog/habits", catalogHandler.ListHabits)
	v1.Get("/catalog/accessories", catalogHandler.ListAccessories)

	// Onboarding wizard routes
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService, logger)
	v1.Post("/onboarding/sessions", onboardingHandler.Start)
	v1.Get("/onboarding/sessions/:id", onboardingHandler.Get)
	v1.Post("/onboarding/sessions/:id/advance", onboardingHandler.Advance)
	v1.Put("/onboarding/sessions/:id/archetype", onboardingHandler.SelectArchetype)
	v1.Put("/onboarding/sessions/:id/habits", onboardingHandler.ToggleHabit)
	v1.Post("/onboarding/sessions/:id/habits/custom", onboardingHandler.AddCustomHabit)
	v1.Post("/onboarding/sessions/:id/accessories/open", onboardingHandler.OpenAccessories)
	v1.Put("/onboarding/sessions/:id/accessory", onboardingHandler.SelectAccessory)
	v1.Post("/onboarding/sessions/:id/accessories/close", onboardingHandler.CloseAccessories)
	v1.Post("/onboarding/sessions/:id/commit", onboardingHandler.Commit)
	v1.Delete("/onboarding/sessions/:id", onboardingHandler.Abandon)

	// Lucky card routes
	rewardHandler := handlers.NewRewardHandler(rewardService, logger)
	v1.Post("/rewards/cards", rewardHandler.OpenCards)
	v1.Post("/rewards/cards/:id/reveal/:index", rewardHandler.Reveal)
	v1.Delete("/rewards/cards/:id", rewardHandler.CloseCards)

	// Progression routes
	progressionHandler := handlers.NewProgressionHandler(progressionService, profileStore, logger)
	v1.Post("/progression/level-up", progressionHandler.LevelUp)
	v1.Get("/profile", progressionHandler.GetProfile)

	// Schedule routes
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, logger)
	v1.Put("/habits/:id/schedule", scheduleHandler.Set)
	v1.Get("/habits/:id/schedule", scheduleHandler.Get)

	// 10. Start Background Workers
	go startBackgroundWorkers(messageQueue, logger)

	// 11. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 12. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// startBackgroundWorkers consumes the domain events published by the
// services, for audit logging and downstream fan-out.
func startBackgroundWorkers(mq queue.MessageQueue, logger *zap.Logger) {
	logger.Info("Starting background workers")

	mq.Subscribe(reward.SubjectRewardApplied, func(msg []byte) error {
		logger.Info("Reward applied", zap.ByteString("msg", msg))
		return nil
	})

	mq.Subscribe(onboarding.SubjectOnboardingCompleted, func(msg []byte) error {
		logger.Info("Onboarding completed", zap.ByteString("msg", msg))
		return nil
	})

	mq.Subscribe(progression.SubjectLevelUp, func(msg []byte) error {
		logger.Info("Level up applied", zap.ByteString("msg", msg))
		return nil
	})
}
