package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"donor-booking/cmd"
	"donor-booking/internal/data/repository"
	"donor-booking/internal/events"
	"donor-booking/internal/wire"
	"donor-booking/pkg/database"
	"donor-booking/pkg/ratelimit"
	"donor-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	err = run(context.Background(), config, logger)
	if err != nil {
		logger.Error("Application stopped", zap.Error(err))
	}
	_ = logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

// run owns every resource it opens, so each return path closes them.
func run(ctx context.Context, config *utils.Config, logger *zap.Logger) error {
	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("storage", config.App.StorageDriver),
		zap.Bool("debug", config.App.Debug),
	)

	infra := wire.Infra{}

	// Storage
	switch config.App.StorageDriver {
	case utils.StorageDriverMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		infra.Repo = repository.NewMemoryRepository(logger)

	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err = database.Migrate(migrateCtx, db)
		cancel()
		if err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}

		logger.Info("Database connected successfully")
		infra.Repo = repository.NewRepository(db, logger)
		infra.Ping = db.Ping
	}

	// Rate limiter
	if config.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		infra.Limiter = ratelimit.NewRedisLimiter(rdb, config.RateLimit.Burst, config.RateLimit.Window(), config.App.Name)
		logger.Info("Using Redis rate limiter", zap.String("addr", config.Redis.Addr))
	} else {
		infra.Limiter = ratelimit.NewMemoryLimiter(config.RateLimit.RPS, config.RateLimit.Burst)
	}

	// Events
	if brokers := events.SplitBrokers(config.Kafka.Brokers); len(brokers) > 0 {
		infra.Publisher = events.NewKafkaPublisher(brokers, config.Kafka.Topic, logger)
		logger.Info("Publishing events to Kafka",
			zap.Strings("brokers", brokers),
			zap.String("topic", config.Kafka.Topic))
	} else {
		infra.Publisher = events.NewLogPublisher(logger)
	}
	defer func() {
		if err := infra.Publisher.Close(); err != nil {
			logger.Warn("Failed to close event publisher", zap.Error(err))
		}
	}()

	// Wire all dependencies
	app, err := wire.Wiring(infra, config, logger)
	if err != nil {
		return fmt.Errorf("wire application: %w", err)
	}

	return cmd.APIServer(ctx, app.Router, config.App.Port, logger)
}
