package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"ai-chat-backend/internal/config"
	"ai-chat-backend/internal/database"
	"ai-chat-backend/internal/handlers"
	"ai-chat-backend/internal/middleware"
	"ai-chat-backend/internal/repository"
	"ai-chat-backend/internal/router"
	"ai-chat-backend/internal/services"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg)
	logger.Info().Msg("starting ai-chat backend")

	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()
	logger.Info().Msg("postgres connected")

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()
	logger.Info().Msg("redis connected")

	if err := database.RunMigrations(pool, "migrations", logger); err != nil {
		logger.Fatal().Err(err).Msg("database migration failed")
	}
	logger.Info().Msg("database migrations applied")

	// Repositories
	threadRepo := repository.NewThreadRepo(pool)
	chatRepo := repository.NewChatRepo(pool)
	appRepo := repository.NewApplicationRepo(pool)

	// Services
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	upstream := services.NewUpstreamClient(cfg.AIServiceURL, time.Duration(cfg.AIStreamTimeoutSeconds)*time.Second)
	historyCache := services.NewHistoryCache(redisClient, 30*time.Minute)
	threadService := services.NewThreadService(threadRepo, chatRepo, appRepo)
	chatService := services.NewChatService(upstream, threadService, chatRepo, historyCache, cfg.MaxQueryLength, logger)

	// Handlers
	chatHandler := handlers.NewChatHandler(chatService)
	threadHandler := handlers.NewThreadHandler(threadService)
	applicationHandler := handlers.NewApplicationHandler(appRepo)

	r := router.New(jwtAuth, chatHandler, threadHandler, applicationHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
		// No WriteTimeout: /chats holds the connection open for the whole
		// upstream stream; the upstream client enforces its own deadline.
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	logger.Info().Str("port", cfg.Port).Msg("ai-chat backend ready")

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Str("service", "ai-chat-backend").Logger()
}
