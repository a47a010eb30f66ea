package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"atelier/internal/config"
	"atelier/internal/logger"
	"atelier/internal/router"
	"atelier/internal/storage"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger()
	log.Info().Msg("Storefront gateway starting")

	var store storage.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal().Err(err).Msg("Redis unreachable")
		}
		cancel()
		store = storage.NewRedisStore(client)
		log.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis for visitor state")
	} else {
		store = storage.NewMemoryStore()
		log.Warn().Msg("REDIS_ADDR not set, visitor state will not survive restarts")
	}

	r := router.SetupRouter(cfg, store, log)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Msgf("Listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
