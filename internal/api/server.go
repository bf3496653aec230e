// Package api exposes the prediction engine over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hemoscan-screening-server/internal/domain"
	"github.com/hemoscan-screening-server/internal/middleware"
	"github.com/hemoscan-screening-server/internal/service"
)

// Server represents the HTTP server.
type Server struct {
	logger     *logrus.Logger
	config     *domain.Config
	router     *gin.Engine
	server     *http.Server
	prediction *service.PredictionService
	store      domain.PredictionStore
	cache      domain.ResponseCache
}

// Option configures optional server collaborators.
type Option func(*Server)

// WithStore attaches a prediction history store.
func WithStore(store domain.PredictionStore) Option {
	return func(s *Server) { s.store = store }
}

// WithCache attaches a response cache.
func WithCache(cache domain.ResponseCache) Option {
	return func(s *Server) { s.cache = cache }
}

// NewServer creates a new HTTP server instance.
func NewServer(logger *logrus.Logger, config *domain.Config, prediction *service.PredictionService, opts ...Option) (*Server, error) {
	if config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())
	router.Use(middleware.CorrelationID())

	if config.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(config.RateLimit, logger)
		if err != nil {
			return nil, fmt.Errorf("creating rate limiter: %w", err)
		}
		router.Use(limiter.Handler())
	}

	server := &Server{
		logger:     logger,
		config:     config,
		router:     router,
		prediction: prediction,
	}
	for _, opt := range opts {
		opt(server)
	}

	server.setupRoutes()

	return server, nil
}

// Router exposes the gin engine, primarily for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.config.Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	s.logger.WithField("addr", addr).Info("HTTP server listening")

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes.
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/predict", s.handlePredict(domain.ModeFull))
		v1.POST("/predict/quick", s.handlePredict(domain.ModeQuick))
		v1.GET("/model", s.handleModelInfo)
		v1.GET("/predictions", s.handleListPredictions)
	}
}
