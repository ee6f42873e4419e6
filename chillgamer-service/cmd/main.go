package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chillgamer/chillgamer-service/internal/app/chillgamer/config"
	"chillgamer/chillgamer-service/internal/app/chillgamer/handler"
	"chillgamer/chillgamer-service/internal/app/chillgamer/infrastructure"
	"chillgamer/chillgamer-service/internal/app/chillgamer/infrastructure/messaging"
	"chillgamer/chillgamer-service/internal/app/chillgamer/repository"
	"chillgamer/chillgamer-service/internal/app/chillgamer/service"
	"chillgamer/pkg/logger"
)

const serviceName = "chillgamer-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.Log.Level)

	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.Log.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	store := repository.NewStore(cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err := connectStore(store, cfg.MongoDB.ConnectRetryAttempts); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()

	reviewRepo := repository.NewReviewRepository(store, cfg.MongoDB.ReviewsCollection)
	watchlistRepo := repository.NewWatchlistRepository(store, cfg.MongoDB.WatchlistCollection)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	for _, repo := range []repository.DocumentRepository{reviewRepo, watchlistRepo} {
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			logger.Warn().Err(err).Msg("Failed to create indexes")
		}
	}
	indexCancel()

	var publisher infrastructure.MessagePublisher = infrastructure.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info().
			Str("topic", cfg.Kafka.Topic).
			Strs("brokers", cfg.Kafka.Brokers).
			Msg("Initialized Kafka producer")
	} else {
		logger.Info().Msg("KAFKA_BROKERS is empty, events are not published")
	}
	defer publisher.Close()

	dispatcher := repository.NewDispatcher(store)
	reviewService := service.NewReviewService(dispatcher, reviewRepo, publisher, cfg.MongoDB.ReviewsCollection)
	watchlistService := service.NewWatchlistService(dispatcher, watchlistRepo, publisher, cfg.MongoDB.WatchlistCollection)

	router := handler.SetupRoutes(
		handler.NewReviewHandler(reviewService),
		handler.NewWatchlistHandler(watchlistService),
		store,
		cfg.CORS.AllowedOrigins,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting ChillGamer Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down ChillGamer Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("ChillGamer Service stopped gracefully")
}

// connectStore пробует подключиться attempts раз с паузой 3 секунды
// Неудачное подключение не кэшируется в Store, поэтому повтор - просто новый Connect.
func connectStore(store *repository.Store, attempts int) error {
	var err error
	for i := 0; i < attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err = store.Connect(ctx)
		cancel()
		if err == nil {
			return nil
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}
	return err
}
