// Command server runs the freight brokerage API: inbound email intake,
// load management, quoting, and carrier matching.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jake-esse/ai-broker/internal/api"
	"github.com/jake-esse/ai-broker/internal/core/service"
	"github.com/jake-esse/ai-broker/internal/infrastructure/config"
	"github.com/jake-esse/ai-broker/internal/infrastructure/db/mongo"
	"github.com/jake-esse/ai-broker/internal/infrastructure/db/redis"
	"github.com/jake-esse/ai-broker/internal/infrastructure/messaging"
	"github.com/jake-esse/ai-broker/internal/infrastructure/queue"
	"github.com/jake-esse/ai-broker/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	// --- Repositories ---
	loadRepo := mongo.NewLoadRepository(db)
	quoteRepo := mongo.NewQuoteRepository(db)
	carrierRepo := mongo.NewCarrierRepository(db)
	authRepo := mongo.NewAuthRepository(db)

	if err := loadRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("load index creation failed")
	}
	if err := quoteRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("quote index creation failed")
	}
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	dedup := redis.NewDedupStore(redisClient, cfg.Redis.DedupTTL)

	// --- Messaging ---
	events := messaging.NewKafkaPublisher(cfg.Kafka.Broker, cfg.Kafka.Topic)
	defer events.Close()

	emails, err := messaging.NewEmailQueue(cfg.Rabbit.URL, cfg.Rabbit.EmailQueue)
	if err != nil {
		log.Fatal().Err(err).Msg("rabbitmq connection failed")
	}
	defer emails.Close()

	// --- Services ---
	thresholds := cfg.Freight.Thresholds()
	intakeSvc := service.NewIntakeService(loadRepo, dedup, events, emails, thresholds, log)
	loadSvc := service.NewLoadService(loadRepo, thresholds, log)
	quoteSvc := service.NewQuoteService(loadRepo, quoteRepo, cfg.Pricing.Engine(), emails, log)
	carrierSvc := service.NewCarrierService(loadRepo, carrierRepo, log)
	authSvc := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL)

	// --- Intake worker pool ---
	dispatcher := queue.NewDispatcher(cfg.IntakeWorkers, intakeSvc, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     redisClient,
		JWTSecret: cfg.JWTSecret,
		Auth:      authSvc,
		Loads:     loadSvc,
		Quotes:    quoteSvc,
		Carriers:  carrierSvc,
		Intake:    dispatcher,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
