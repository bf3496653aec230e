package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/hemoscan-screening-server/internal/api"
	"github.com/hemoscan-screening-server/internal/cache"
	"github.com/hemoscan-screening-server/internal/config"
	"github.com/hemoscan-screening-server/internal/domain"
	"github.com/hemoscan-screening-server/internal/history"
	"github.com/hemoscan-screening-server/internal/model"
	"github.com/hemoscan-screening-server/internal/service"
)

func main() {
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}
	cfg := configManager.GetConfig()

	logger := newLogger(cfg.Logging)

	// The classifier loads exactly once, before any request is served. A
	// failed load leaves the service up but answering MODEL_UNAVAILABLE, so
	// operators can see the failure instead of a crash loop.
	var classifier domain.Classifier
	if loaded, err := model.Load(cfg.Model.Path, logger); err != nil {
		logger.WithError(err).WithField("path", cfg.Model.Path).
			Error("Failed to load classifier artifact; predictions will be unavailable")
	} else {
		classifier = loaded
	}

	prediction := service.NewPredictionService(logger, classifier)

	opts := make([]api.Option, 0, 2)

	store, err := newStore(cfg.Store)
	if err != nil {
		logger.WithError(err).Error("Failed to open prediction store; history disabled")
	} else {
		defer store.Close()
		opts = append(opts, api.WithStore(store))
	}

	if cfg.Cache.Enabled {
		responseCache, err := cache.NewClient(cfg.Cache, logger)
		if err != nil {
			logger.WithError(err).Error("Failed to connect response cache; caching disabled")
		} else {
			defer responseCache.Close()
			opts = append(opts, api.WithCache(responseCache))
		}
	}

	server, err := api.NewServer(logger, cfg, prediction, opts...)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create server")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}

func newStore(cfg domain.StoreConfig) (domain.PredictionStore, error) {
	if cfg.Backend == "postgres" {
		return history.NewPostgresStoreFromURL(cfg.PostgresURL)
	}
	return history.NewSQLiteStore(cfg.SQLitePath)
}
