package handler

import (
	"context"
	"fmt"
	"net/http"

	"content-portal/internal/audit"
	"content-portal/internal/auth"
	"content-portal/internal/domain/client"
	"content-portal/internal/domain/content"
	"content-portal/internal/export"
	"content-portal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BundleResolver assembles a client's content bundle.
type BundleResolver interface {
	Resolve(ctx context.Context, clientID uuid.UUID) (*export.Result, error)
	Connected() bool
}

// ArtifactBuilder turns resolved data into downloadable artifacts.
type ArtifactBuilder interface {
	Export(ctx context.Context, sectionID string, data any, cfg export.Settings) (*export.Artifact, error)
	ExportBundle(ctx context.Context, bundle *content.Bundle, cfg export.Settings) (*export.Artifact, error)
}

// ExportSettingsStore loads and saves per-admin export configuration.
type ExportSettingsStore interface {
	Load(ctx context.Context, adminUID uuid.UUID) export.Settings
	Save(ctx context.Context, adminUID uuid.UUID, settings export.Settings) error
}

type ExportHandler struct {
	resolver BundleResolver
	builder  ArtifactBuilder
	settings ExportSettingsStore
	auditLog AuditLogger
}

func NewExportHandler(resolver BundleResolver, builder ArtifactBuilder, settings ExportSettingsStore, auditLog AuditLogger) *ExportHandler {
	return &ExportHandler{resolver: resolver, builder: builder, settings: settings, auditLog: auditLog}
}

type BundleResponse struct {
	Client    *client.Client          `json:"client"`
	Connected bool                    `json:"connected"`
	Sections  []export.SectionInfo    `json:"sections"`
	Failures  []export.SectionFailure `json:"failures,omitempty"`
}

// GetBundle resolves the client's bundle and returns the annotated section
// catalog plus the store connection state.
func (h *ExportHandler) GetBundle(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidClientID)
	}

	result, err := h.resolver.Resolve(c.Request().Context(), clientID)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, BundleResponse{
		Client:    result.Client,
		Connected: h.resolver.Connected(),
		Sections:  export.ListSections(result.Bundle),
		Failures:  result.Failures,
	})
}

// GetSection returns one section's resolved data with precedence applied.
func (h *ExportHandler) GetSection(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidClientID)
	}
	sectionID := c.Param(paramSectionID)

	result, err := h.resolver.Resolve(c.Request().Context(), clientID)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	data, ok := export.SectionData(result.Bundle, sectionID)
	if !ok {
		return respondError(c, http.StatusNotFound, fmt.Sprintf("no data for section %s", sectionID))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"id":   sectionID,
		"name": export.Title(sectionID),
		"data": data,
	})
}

// ExportSection builds and streams a single-section artifact.
func (h *ExportHandler) ExportSection(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidClientID)
	}
	sectionID := c.Param(paramSectionID)

	result, err := h.resolver.Resolve(c.Request().Context(), clientID)
	if err != nil {
		metrics.RecordExport(false)
		return RespondWithMappedError(c, err)
	}

	data, ok := export.SectionData(result.Bundle, sectionID)
	if !ok {
		metrics.RecordExport(false)
		return respondError(c, http.StatusNotFound, fmt.Sprintf("no data for section %s", sectionID))
	}

	cfg, err := h.exportConfig(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidExportFormat)
	}

	artifact, err := h.builder.Export(c.Request().Context(), sectionID, data, cfg)
	if err != nil {
		metrics.RecordExport(false)
		h.auditLog.LogError(c, audit.ResourceTypeExport, sectionID, audit.ActionExport, err)
		return RespondWithMappedError(c, err)
	}

	metrics.RecordExport(true)
	h.auditLog.LogFromContext(c, audit.ResourceTypeExport, sectionID, audit.ActionExport, audit.StatusSuccess,
		map[string]any{"client": clientID.String(), "format": string(cfg.ExportFormat)})

	return sendArtifact(c, artifact)
}

// ExportAll builds and streams a whole-bundle artifact.
func (h *ExportHandler) ExportAll(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidClientID)
	}

	result, err := h.resolver.Resolve(c.Request().Context(), clientID)
	if err != nil {
		metrics.RecordExport(false)
		return RespondWithMappedError(c, err)
	}

	cfg, err := h.exportConfig(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidExportFormat)
	}

	artifact, err := h.builder.ExportBundle(c.Request().Context(), result.Bundle, cfg)
	if err != nil {
		metrics.RecordExport(false)
		h.auditLog.LogError(c, audit.ResourceTypeExport, clientID.String(), audit.ActionExport, err)
		return RespondWithMappedError(c, err)
	}

	metrics.RecordExport(true)
	h.auditLog.LogFromContext(c, audit.ResourceTypeExport, clientID.String(), audit.ActionExport, audit.StatusSuccess,
		map[string]any{"format": string(cfg.ExportFormat)})

	return sendArtifact(c, artifact)
}

func (h *ExportHandler) GetSettings(c echo.Context) error {
	adminUID, err := auth.GetUserID(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, h.settings.Load(c.Request().Context(), adminUID))
}

func (h *ExportHandler) SaveSettings(c echo.Context) error {
	adminUID, err := auth.GetUserID(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	var settings export.Settings
	if err := bindStrictJSON(c, &settings); err != nil {
		return handleHTTPError(c, err)
	}

	if !validFormat(settings.ExportFormat) {
		return respondError(c, http.StatusBadRequest, msgInvalidExportFormat)
	}

	if err := h.settings.Save(c.Request().Context(), adminUID, settings); err != nil {
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeSettings, adminUID.String(), audit.ActionUpdate, audit.StatusSuccess, nil)

	return respondMessage(c, http.StatusOK, msgSettingsSaved)
}

// exportConfig loads the admin's saved settings and applies the per-request
// format override, if any.
func (h *ExportHandler) exportConfig(c echo.Context) (export.Settings, error) {
	cfg := export.DefaultSettings()
	if adminUID, err := auth.GetUserID(c); err == nil {
		cfg = h.settings.Load(c.Request().Context(), adminUID)
	}

	if raw := c.QueryParam(queryParamFormat); raw != "" {
		format := export.Format(raw)
		if !validFormat(format) {
			return cfg, fmt.Errorf("unknown format %q", raw)
		}
		cfg.ExportFormat = format
	}

	return cfg, nil
}

func validFormat(f export.Format) bool {
	switch f {
	case export.FormatZip, export.FormatJSON, export.FormatTxt:
		return true
	}
	return false
}

func sendArtifact(c echo.Context, artifact *export.Artifact) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	return c.Blob(http.StatusOK, artifact.ContentType, artifact.Data)
}
