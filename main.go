package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventpulse/eventpulse/cache/redis"
	"github.com/eventpulse/eventpulse/config"
	"github.com/eventpulse/eventpulse/repository/postgres"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Try to load from config.yaml first, fallback to environment variables
	cfg, err := config.Initialise("config.yaml", false)
	if err != nil {
		logger.Info("config file not found or invalid, using environment variables", zap.Error(err))
		cfg, err = config.Initialise("", true)
		if err != nil {
			logger.Fatal("failed to load configuration", zap.Error(err))
		}
	}

	db, err := postgres.Connect(cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	eventCache := redis.NewRedisEventCache(cfg.Redis.GetRedisURL(), cfg.Redis.Password, cfg.Redis.DB)
	defer eventCache.Close()

	// A dead cache is not fatal: reads fall through to the store and
	// writes skip invalidation until it recovers.
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := eventCache.Ping(pingCtx); err != nil {
		logger.Warn("cache unreachable at startup, continuing without it", zap.Error(err))
	}
	cancel()

	adapters := Adapters{
		Events:   postgres.NewEventRepository(db),
		Bookings: postgres.NewBookingRepository(db),
		Users:    postgres.NewUserRepository(db),
		Cache:    eventCache,
	}

	router := SetupRouter(cfg, adapters, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
