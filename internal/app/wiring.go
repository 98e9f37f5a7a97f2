package app

import (
	"fmt"

	"content-portal/internal/accounts"
	"content-portal/internal/audit"
	"content-portal/internal/auth"
	"content-portal/internal/config"
	"content-portal/internal/export"
	portalhttp "content-portal/internal/http"
	"content-portal/internal/repository/postgres"
	"content-portal/pkg/blob"
	"content-portal/pkg/cache"
	"content-portal/pkg/logger"
)

// InitializeService wires up all dependencies and returns a configured Service
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	blobStore, err := blob.NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}

	urlCache := cache.NewURLCache()

	documentRepo := postgres.NewDocumentRepository(db)
	clientRepo := postgres.NewClientRepository(db)
	requestRepo := postgres.NewRequestRepository(db)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)
	authMiddleware := auth.NewMiddleware(jwtService)

	accountService := accounts.NewService(clientRepo, documentRepo, jwtService, log)

	resolver := export.NewResolver(documentRepo, clientRepo, log)
	fetcher := export.NewBlobImageFetcher(blobStore, cfg.Export.FetchTimeout)
	builder := export.NewBuilder(fetcher, log)
	exportSettings := export.NewSettingsStore(documentRepo, urlCache, log)

	auditLogger := audit.NewLogger(db.Pool)

	server := portalhttp.NewServer(&portalhttp.ServerDependencies{
		Config:         cfg,
		Accounts:       accountService,
		AccountAdmin:   accountService,
		Documents:      documentRepo,
		Requests:       requestRepo,
		Resolver:       resolver,
		Builder:        builder,
		ExportSettings: exportSettings,
		BlobStore:      blobStore,
		URLCache:       urlCache,
		AuthMiddleware: authMiddleware,
		AuditLogger:    auditLogger,
	})

	return &Service{
		config:   cfg,
		logger:   log,
		db:       db,
		urlCache: urlCache,
		server:   server,
	}, nil
}
