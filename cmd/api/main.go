package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/feedstream/feed-api/internal/api"
	"github.com/feedstream/feed-api/internal/core/ports"
	"github.com/feedstream/feed-api/internal/core/service"
	"github.com/feedstream/feed-api/internal/graph"
	mongodb "github.com/feedstream/feed-api/internal/infrastructure/db/mongo"
	redisdb "github.com/feedstream/feed-api/internal/infrastructure/db/redis"
	"github.com/feedstream/feed-api/internal/infrastructure/storage"
	"github.com/feedstream/feed-api/internal/pkg/config"
	"github.com/feedstream/feed-api/internal/realtime"
	"github.com/feedstream/feed-api/pkg/logger"
)

// @title        Feed API
// @version      1.0
// @description  Content feed backend with REST and GraphQL surfaces.
// @host         localhost:8080
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure post indexes")
	}

	assetStore, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise asset store")
	}

	// --- Realtime ---
	hub := realtime.NewHub(log)

	var publisher ports.Publisher = hub
	redisClient, err := redisClientFromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
		bridge := realtime.NewBridge(redisClient, hub, realtime.DefaultChannel, log)
		go bridge.Run(ctx)
		publisher = bridge
		log.Info().Str("channel", realtime.DefaultChannel).Msg("realtime bridge enabled")
	} else {
		log.Info().Msg("redis not configured, realtime events stay in-process")
	}

	// --- Core services ---
	codec := service.NewJWTCodec(cfg.JWTSecret, service.TokenTTL)
	authService := service.NewAuthService(userRepo, codec, log)
	postService := service.NewPostService(postRepo, userRepo, assetStore, publisher, log)

	// --- GraphQL ---
	schema, err := graph.NewSchema(authService, postService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build graphql schema")
	}

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Auth:    authService,
		Posts:   postService,
		Hub:     hub,
		GraphQL: schema.Handler(),
		Mongo:   db,
		Redis:   redisClient,
		Logger:  log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// redisClientFromConfig returns nil without error when no Redis address is
// configured.
func redisClientFromConfig(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	return redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}
