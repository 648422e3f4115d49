package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kgconnect/alumni-portal/internal/api"
	"github.com/kgconnect/alumni-portal/internal/infrastructure/config"
	mongoinfra "github.com/kgconnect/alumni-portal/internal/infrastructure/db/mongo"
	redisinfra "github.com/kgconnect/alumni-portal/internal/infrastructure/db/redis"
	"github.com/kgconnect/alumni-portal/pkg/logger"
)

// @title        Alumni Portal API
// @version      1.0
// @description  College alumni and student portal with bulk roster reconciliation.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	logg := logger.Init(logger.Options{
		Service: "alumni-portal",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
		logg.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer func() { _ = rdb.Close() }()

	e, dispatcher, err := api.NewRouter(api.RouterDeps{
		Mongo:     db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		UploadDir: cfg.UploadDir,
		Logger:    logg,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to build router")
	}

	dispatcher.Start(ctx)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logg.Fatal().Err(err).Msg("server failed")
		}
	}()

	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown failed")
	}
}
