package app

import (
	"context"
	"time"

	"content-portal/internal/config"
	portalhttp "content-portal/internal/http"
	"content-portal/internal/repository/postgres"
	"content-portal/pkg/cache"

	"go.uber.org/zap"
)

const cacheCleanupInterval = 5 * time.Minute

// Service is the assembled content portal application.
type Service struct {
	config   *config.Config
	logger   *zap.Logger
	db       *postgres.DB
	urlCache *cache.URLCache
	server   *portalhttp.Server
}

// NewService creates and initializes a new Service instance
// This is a convenience wrapper around InitializeService
func NewService() (*Service, error) {
	return InitializeService()
}

// Start starts the service and all background tasks
func (s *Service) Start() error {
	go s.startCacheCleanup()

	s.logger.Info("starting content portal", zap.String("port", s.config.Server.Port))
	return s.server.Start(":" + s.config.Server.Port)
}

// startCacheCleanup runs a background task to clear expired cache entries
func (s *Service) startCacheCleanup() {
	ticker := time.NewTicker(cacheCleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.urlCache.Clear()
	}
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(ctx context.Context) error {
	defer s.db.Close()
	defer func() { _ = s.logger.Sync() }()
	return s.server.Shutdown(ctx)
}
