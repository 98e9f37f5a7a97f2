package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"content-portal/internal/domain/client"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestMiddleware() (*Middleware, *JWTService) {
	svc := NewJWTService("test-secret-at-least-32-characters!!", time.Hour)
	return NewMiddleware(svc), svc
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequireJWT_MissingToken(t *testing.T) {
	m, _ := newTestMiddleware()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := m.RequireJWT()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireJWT_InvalidToken(t *testing.T) {
	m, _ := newTestMiddleware()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerAuthorization, "Bearer bogus")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := m.RequireJWT()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireJWT_ValidTokenPopulatesContext(t *testing.T) {
	m, svc := newTestMiddleware()
	e := echo.New()
	userID := uuid.New()

	token, err := svc.Generate(userID, "admin@example.com", client.RoleAdmin)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = m.RequireJWT()(func(c echo.Context) error {
		id, err := GetUserID(c)
		assert.NoError(t, err)
		assert.Equal(t, userID, id)

		role, err := GetRole(c)
		assert.NoError(t, err)
		assert.Equal(t, client.RoleAdmin, role)

		assert.Equal(t, "admin@example.com", GetEmail(c))
		return c.String(http.StatusOK, "ok")
	})(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireStaff(t *testing.T) {
	m, _ := newTestMiddleware()
	e := echo.New()

	cases := []struct {
		role client.Role
		want int
	}{
		{client.RoleAdmin, http.StatusOK},
		{client.RoleOwner, http.StatusOK},
		{client.RoleClient, http.StatusForbidden},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(ContextKeyRole, tc.role)

		err := m.RequireStaff()(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, rec.Code, "role %s", tc.role)
	}
}

func TestRequireStaff_Unauthenticated(t *testing.T) {
	m, _ := newTestMiddleware()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := m.RequireStaff()(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	m, _ := newTestMiddleware()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyRole, client.RoleAdmin)

	err := m.RequireRole(client.RoleOwner)(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExtractBearerToken(t *testing.T) {
	e := echo.New()

	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"", ""},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set(headerAuthorization, tc.header)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Equal(t, tc.want, extractBearerToken(c), "header %q", tc.header)
	}
}
