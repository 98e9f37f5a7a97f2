package export

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"content-portal/internal/domain/content"
	"content-portal/pkg/cache"
	apperrors "content-portal/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompressionLevel is the admin-facing archive compression choice.
type CompressionLevel string

const (
	CompressionLow    CompressionLevel = "low"
	CompressionMedium CompressionLevel = "medium"
	CompressionHigh   CompressionLevel = "high"
)

// Settings is one admin's export configuration, persisted under
// users/{adminUid}/settings/adminSettings.
type Settings struct {
	IncludeImages    bool             `json:"includeImages"`
	ExportFormat     Format           `json:"exportFormat"`
	CompressionLevel CompressionLevel `json:"compressionLevel"`
}

// DefaultSettings is what a new admin gets before saving anything.
func DefaultSettings() Settings {
	return Settings{
		IncludeImages:    true,
		ExportFormat:     FormatZip,
		CompressionLevel: CompressionMedium,
	}
}

// FlateLevel maps the compression choice to a flate level. Unknown or unset
// levels mean store-only.
func (s Settings) FlateLevel() int {
	switch s.CompressionLevel {
	case CompressionLow:
		return 3
	case CompressionMedium:
		return 6
	case CompressionHigh:
		return 9
	default:
		return 0
	}
}

// DocumentStore is the read/write document access the settings store needs.
type DocumentStore interface {
	Get(ctx context.Context, path string) (content.SectionData, error)
	Put(ctx context.Context, path string, doc content.SectionData) error
}

const settingsCacheTTL = 24 * time.Hour

// SettingsStore loads and saves per-admin export configuration, falling back
// to the last locally cached copy when the document store is unreachable.
type SettingsStore struct {
	docs   DocumentStore
	local  *cache.URLCache
	logger *zap.Logger
}

func NewSettingsStore(docs DocumentStore, local *cache.URLCache, logger *zap.Logger) *SettingsStore {
	return &SettingsStore{docs: docs, local: local, logger: logger}
}

func settingsCacheKey(adminUID uuid.UUID) string {
	return adminSettingsID + ":" + adminUID.String()
}

// Load returns the admin's saved configuration. A missing document yields the
// defaults; an unreachable store yields the cached copy if one exists, else
// the defaults.
func (s *SettingsStore) Load(ctx context.Context, adminUID uuid.UUID) Settings {
	doc, err := s.docs.Get(ctx, adminSettingsPath(adminUID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return DefaultSettings()
		}

		s.logger.Warn("export settings load failed, using local fallback",
			zap.String("admin", adminUID.String()), zap.Error(err))
		if cached, found := s.local.Get(settingsCacheKey(adminUID)); found {
			var settings Settings
			if err := json.Unmarshal([]byte(cached), &settings); err == nil {
				return settings
			}
		}
		return DefaultSettings()
	}

	settings := decodeSettings(doc)
	s.cacheLocally(adminUID, settings)
	return settings
}

// Save persists the configuration and refreshes the local fallback copy.
func (s *SettingsStore) Save(ctx context.Context, adminUID uuid.UUID, settings Settings) error {
	doc := content.SectionData{
		"includeImages":    settings.IncludeImages,
		"exportFormat":     string(settings.ExportFormat),
		"compressionLevel": string(settings.CompressionLevel),
	}

	if err := s.docs.Put(ctx, adminSettingsPath(adminUID), doc); err != nil {
		return err
	}

	s.cacheLocally(adminUID, settings)
	return nil
}

func (s *SettingsStore) cacheLocally(adminUID uuid.UUID, settings Settings) {
	encoded, err := json.Marshal(settings)
	if err != nil {
		return
	}
	s.local.Set(settingsCacheKey(adminUID), string(encoded), time.Now().Add(settingsCacheTTL))
}

func decodeSettings(doc content.SectionData) Settings {
	settings := DefaultSettings()

	if v, ok := doc["includeImages"].(bool); ok {
		settings.IncludeImages = v
	}
	if v, ok := doc["exportFormat"].(string); ok && v != "" {
		settings.ExportFormat = Format(v)
	}
	if v, ok := doc["compressionLevel"].(string); ok && v != "" {
		settings.CompressionLevel = CompressionLevel(v)
	}

	return settings
}
