package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventify/eventify/internal/api"
	"github.com/eventify/eventify/internal/infrastructure/config"
	mongodb "github.com/eventify/eventify/internal/infrastructure/db/mongo"
	redisdb "github.com/eventify/eventify/internal/infrastructure/db/redis"
	"github.com/eventify/eventify/internal/infrastructure/queue"
	"github.com/eventify/eventify/internal/security/revocation"
	"github.com/eventify/eventify/internal/security/token"
	"github.com/eventify/eventify/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	codec, err := token.New([]byte(cfg.TokenKey))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token key")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	registrationRepo := mongodb.NewRegistrationRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := registrationRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("registration index creation failed")
	}

	revocations := revocation.New(cfg.Auth.RevocationCapacity, log)
	revocations.StartSweeper(ctx, cfg.Auth.SweepInterval)

	limiter := redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow, log)

	audit := queue.NewAuditDispatcher(0, auditRepo, log)
	audit.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Users:         userRepo,
		Events:        eventRepo,
		Registrations: registrationRepo,
		Codec:         codec,
		Revocations:   revocations,
		Limiter:       limiter,
		Audit:         audit,
		Mongo:         db,
		Redis:         rdb,
		Log:           log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("eventify api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
