package http

import (
	"context"
	stdhttp "net/http"

	"content-portal/internal/auth"
	"content-portal/internal/config"
	"content-portal/internal/domain/client"
	"content-portal/internal/http/handler"
	"content-portal/internal/http/middleware"
	"content-portal/pkg/cache"
	"content-portal/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "12M" // image uploads plus headroom
)

type ServerDependencies struct {
	Config         *config.Config
	Accounts       handler.AccountService
	AccountAdmin   handler.AccountAdminService
	Documents      handler.DocumentStore
	Requests       handler.RequestStore
	Resolver       handler.BundleResolver
	Builder        handler.ArtifactBuilder
	ExportSettings handler.ExportSettingsStore
	BlobStore      handler.BlobUploader
	URLCache       *cache.URLCache
	AuthMiddleware *auth.Middleware
	AuditLogger    handler.AuditLogger
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))
	e.Use(metrics.Middleware())

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.Accounts, deps.AuditLogger)
	accountHandler := handler.NewAccountHandler(deps.AccountAdmin, deps.AuditLogger)
	exportHandler := handler.NewExportHandler(deps.Resolver, deps.Builder, deps.ExportSettings, deps.AuditLogger)
	sectionHandler := handler.NewSectionHandler(deps.Documents, deps.AuditLogger)
	requestHandler := handler.NewRequestHandler(deps.Requests, deps.AuditLogger)
	uploadHandler := handler.NewUploadHandler(deps.BlobStore, deps.Documents, deps.URLCache, deps.AuditLogger)

	e.POST("/auth/login", authHandler.Login, strictRateLimiter.Middleware())
	e.GET("/health", healthCheck)

	api := e.Group("/api")
	api.Use(deps.AuthMiddleware.RequireJWT())

	// admin review surface
	admin := api.Group("")
	admin.Use(deps.AuthMiddleware.RequireStaff())

	admin.GET("/metrics", metrics.Handler)

	admin.GET("/clients", accountHandler.ListClients)
	admin.GET("/clients/:id/bundle", exportHandler.GetBundle)
	admin.GET("/clients/:id/sections/:sid", exportHandler.GetSection)
	admin.GET("/clients/:id/sections/:sid/export", exportHandler.ExportSection)
	admin.GET("/clients/:id/export", exportHandler.ExportAll)

	admin.GET("/settings/export", exportHandler.GetSettings)
	admin.PUT("/settings/export", exportHandler.SaveSettings)

	admin.POST("/accounts/clients", accountHandler.CreateClient)
	admin.POST("/accounts/admins", accountHandler.CreateAdmin, deps.AuthMiddleware.RequireRole(client.RoleOwner))
	admin.PUT("/accounts/:uid/status", accountHandler.UpdateStatus)
	admin.DELETE("/accounts/:uid", accountHandler.Delete)

	admin.GET("/requests", requestHandler.List)
	admin.GET("/requests/:id", requestHandler.Get)
	admin.POST("/requests/:id/review", requestHandler.Review)

	// client intake surface
	api.PUT("/content/sections/:sid", sectionHandler.Save)
	api.GET("/content/sections/:sid", sectionHandler.Get)
	api.POST("/content/requests", requestHandler.Submit)
	api.POST("/content/uploads/images", uploadHandler.UploadImage)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
