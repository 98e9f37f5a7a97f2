package handler

import (
	"context"
	"net/http"

	"content-portal/internal/audit"
	"content-portal/internal/domain/client"

	"github.com/labstack/echo/v4"
)

// AccountService is the account surface handlers consume.
type AccountService interface {
	Login(ctx context.Context, email, pass string) (string, *client.Client, error)
}

// AuditLogger records request-scoped audit events.
type AuditLogger interface {
	LogFromContext(c echo.Context, resourceType audit.ResourceType, resourceID string, action audit.Action, status audit.Status, metadata map[string]any)
	LogError(c echo.Context, resourceType audit.ResourceType, resourceID string, action audit.Action, err error)
}

type AuthHandler struct {
	accounts AccountService
	auditLog AuditLogger
}

func NewAuthHandler(accounts AccountService, auditLog AuditLogger) *AuthHandler {
	return &AuthHandler{accounts: accounts, auditLog: auditLog}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token       string      `json:"token"`
	UserID      string      `json:"user_id"`
	DisplayName string      `json:"display_name"`
	Role        client.Role `json:"role"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	// Timing equalization for unknown emails lives in the account service.
	token, acct, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeAccount, req.Email, audit.ActionLogin, err)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeAccount, acct.ID.String(), audit.ActionLogin, audit.StatusSuccess, nil)

	return c.JSON(http.StatusOK, LoginResponse{
		Token:       token,
		UserID:      acct.ID.String(),
		DisplayName: acct.DisplayName,
		Role:        acct.Role,
	})
}
