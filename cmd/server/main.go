package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sheikh-saqib/cash-drawer-planner/internal/cashier"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/config"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/events"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/events/kafka"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/httpapi"
	interfaces "github.com/sheikh-saqib/cash-drawer-planner/internal/interfaces"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/logger"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/storage/file"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/storage/memory"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/storage/postgres"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/storage/redis"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/till"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("Failed to open record store")
	}
	defer closeStore()

	var publisher interfaces.EventPublisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close kafka publisher")
			}
		}()
		publisher = kp
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("Publishing record events to kafka")
	}

	planner := till.NewPlanner(models.DefaultCatalog(), cfg.ReserveMinor)
	c := cashier.NewCashier(planner, store, publisher, cashier.WithLogger(log))

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      httpapi.NewRouter(c, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Str("store", cfg.Store).
			Str("reserve", till.FormatMinor(cfg.ReserveMinor)).
			Msg("Starting till server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openStore builds the configured record store and a func releasing its connections
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (interfaces.RecordStore, func(), error) {
	switch cfg.Store {
	case config.StoreFile:
		return file.NewFileRecordStore(cfg.RecordsFile), func() {}, nil

	case config.StoreRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("error connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		return redis.NewRedisRecordStore(client, cfg.RedisKey), closer(client, log), nil

	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewPostgresRecordStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, closer(db, log), nil

	default:
		return memory.NewMemoryRecordStore(), func() {}, nil
	}
}

func closer(c io.Closer, log zerolog.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close store connection")
		}
	}
}
