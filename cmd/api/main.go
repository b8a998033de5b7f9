package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"lost-found/internal/config"
	"lost-found/internal/database"
	"lost-found/internal/event"
	"lost-found/internal/handler"
	"lost-found/internal/middleware"
	"lost-found/internal/pkg/i18n"
	"lost-found/internal/pkg/logger"
	"lost-found/internal/push"
	"lost-found/internal/repository"
	"lost-found/internal/service"
	"lost-found/internal/trigger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	appLog, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		migrator := database.NewMigrator(db, database.MigrationConfig{
			Version: cfg.MigrateVersion,
			Force:   cfg.MigrateForce,
		}, appLog.With("component", "migrate"))
		if err := migrator.Migrate(); err != nil {
			appLog.Fatal("Failed to migrate database", "error", err)
		}
	}

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		appLog.Warn("Redis unavailable, recipient cache disabled", "error", err)
		redis = nil
	}
	if redis != nil {
		defer redis.Close()
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		appLog.Fatal("Failed to load message catalog", "error", err)
	}
	appLog.Info("Message catalog loaded", "locales", catalog.Locales())

	sender, err := newSender(ctx, cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to create push sender", "error", err)
	}

	bus := newBus(cfg, appLog)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, bus, sender, catalog, cfg, appLog)
	trigger.Register(bus, services.Matching, services.Notification, appLog.With("component", "trigger"))
	trigger.RegisterHistory(bus, services.Audit, appLog.With("component", "history"))

	// Handlers must be registered before the consumer starts fetching.
	if kafkaBus, ok := bus.(*event.KafkaBus); ok {
		kafkaBus.Start(ctx)
		defer func() {
			if err := kafkaBus.Close(); err != nil {
				appLog.Error("Failed to close kafka bus", "error", err)
			}
		}()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(appLog),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, OPTIONS",
	}))

	handler.RegisterRoutes(app, handler.NewHandlers(services), services.Auth)

	go func() {
		<-ctx.Done()
		appLog.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLog.Error("Server shutdown failed", "error", err)
		}
	}()

	appLog.Info("Server starting", "port", cfg.Port, "event_bus", cfg.EventBus)
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLog.Fatal("Failed to start server", "error", err)
	}
}

func loadCatalog(cfg *config.Config) (*i18n.Catalog, error) {
	if cfg.LocalePath != "" {
		return i18n.LoadDir(cfg.LocalePath)
	}
	return i18n.LoadDefault()
}

func newSender(ctx context.Context, cfg *config.Config, log *logger.Logger) (push.Sender, error) {
	if !cfg.FCMEnabled {
		log.Warn("FCM disabled, push messages are only logged")
		return push.NewLogSender(log.With("component", "push")), nil
	}
	return push.NewFCMSender(ctx, cfg.FCMProjectID, cfg.FCMCredentialsFile)
}

func newBus(cfg *config.Config, log *logger.Logger) event.Bus {
	if cfg.EventBus == "kafka" {
		return event.NewKafkaBus(event.KafkaConfig{
			Brokers:       cfg.KafkaBrokers,
			Topic:         cfg.KafkaTopic,
			ConsumerGroup: cfg.KafkaConsumerGroup,
			RetryInitial:  cfg.KafkaRetryInitial,
			RetryMax:      cfg.KafkaRetryMax,
		}, log.With("component", "kafka"))
	}
	return event.NewMemoryBus()
}
