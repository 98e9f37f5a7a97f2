package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"content-portal/internal/domain/client"
	apperrors "content-portal/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stubAccounts struct {
	token string
	acct  *client.Client
	err   error
}

func (s *stubAccounts) Login(_ context.Context, _, _ string) (string, *client.Client, error) {
	return s.token, s.acct, s.err
}

func TestLogin_Success(t *testing.T) {
	e := echo.New()
	acct := &client.Client{ID: uuid.New(), DisplayName: "Admin", Role: client.RoleAdmin}
	h := NewAuthHandler(&stubAccounts{token: "signed-token", acct: acct}, nopAudit{})

	c, rec := jsonRequest(t, e, http.MethodPost, "/auth/login",
		`{"email":"admin@example.com","password":"correct-horse"}`)

	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, client.RoleAdmin, resp.Role)
}

func TestLogin_BadCredentials(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAccounts{err: apperrors.InvalidCredentials()}, nopAudit{})

	c, rec := jsonRequest(t, e, http.MethodPost, "/auth/login",
		`{"email":"admin@example.com","password":"wrong"}`)

	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_EmptyFields(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAccounts{}, nopAudit{})

	c, rec := jsonRequest(t, e, http.MethodPost, "/auth/login", `{"email":"","password":""}`)

	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_RejectsUnknownFields(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAccounts{}, nopAudit{})

	c, rec := jsonRequest(t, e, http.MethodPost, "/auth/login",
		`{"email":"a@b.co","password":"x","extra":true}`)

	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_RequiresJSONContentType(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAccounts{}, nopAudit{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"a@b.co","password":"x"}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
