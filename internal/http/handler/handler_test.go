package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"content-portal/internal/audit"
	"content-portal/internal/domain/content"
	"content-portal/internal/export"
	apperrors "content-portal/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// nopAudit satisfies AuditLogger without touching a database.
type nopAudit struct{}

func (nopAudit) LogFromContext(echo.Context, audit.ResourceType, string, audit.Action, audit.Status, map[string]any) {
}
func (nopAudit) LogError(echo.Context, audit.ResourceType, string, audit.Action, error) {}

func jsonRequest(t *testing.T, e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubResolver struct {
	result    *export.Result
	err       error
	connected bool
}

func (s *stubResolver) Resolve(_ context.Context, _ uuid.UUID) (*export.Result, error) {
	return s.result, s.err
}

func (s *stubResolver) Connected() bool { return s.connected }

type stubBuilder struct {
	artifact *export.Artifact
	err      error
}

func (s *stubBuilder) Export(_ context.Context, _ string, _ any, _ export.Settings) (*export.Artifact, error) {
	return s.artifact, s.err
}

func (s *stubBuilder) ExportBundle(_ context.Context, _ *content.Bundle, _ export.Settings) (*export.Artifact, error) {
	return s.artifact, s.err
}

type stubSettings struct {
	loaded export.Settings
	saved  *export.Settings
	err    error
}

func (s *stubSettings) Load(_ context.Context, _ uuid.UUID) export.Settings {
	return s.loaded
}

func (s *stubSettings) Save(_ context.Context, _ uuid.UUID, settings export.Settings) error {
	if s.err != nil {
		return s.err
	}
	s.saved = &settings
	return nil
}

type memoryDocs struct {
	docs map[string]content.SectionData
	err  error
}

func newMemoryDocs() *memoryDocs {
	return &memoryDocs{docs: make(map[string]content.SectionData)}
}

func (m *memoryDocs) Get(_ context.Context, path string) (content.SectionData, error) {
	if m.err != nil {
		return nil, m.err
	}
	if doc, ok := m.docs[path]; ok {
		return doc, nil
	}
	return nil, apperrors.NotFound("document not found")
}

func (m *memoryDocs) Put(_ context.Context, path string, doc content.SectionData) error {
	if m.err != nil {
		return m.err
	}
	m.docs[path] = doc
	return nil
}
