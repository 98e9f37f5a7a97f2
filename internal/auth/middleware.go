package auth

import (
	"net/http"
	"strings"

	"content-portal/internal/domain/client"
	apperrors "content-portal/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Middleware struct {
	jwtService *JWTService
}

func NewMiddleware(jwtService *JWTService) *Middleware {
	return &Middleware{jwtService: jwtService}
}

func (m *Middleware) RequireJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return respondError(c, http.StatusUnauthorized, msgMissingAuthorization)
			}

			claims, err := m.jwtService.Verify(token)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyEmail, claims.Email)
			c.Set(ContextKeyRole, claims.Role)

			return next(c)
		}
	}
}

// RequireStaff gates the admin surface. Must run after RequireJWT.
func (m *Middleware) RequireStaff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := GetRole(c)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgUserNotAuthenticated)
			}
			if !role.IsStaff() {
				return respondError(c, http.StatusForbidden, msgStaffOnly)
			}
			return next(c)
		}
	}
}

// RequireRole gates a route to an exact role. Must run after RequireJWT.
func (m *Middleware) RequireRole(required client.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := GetRole(c)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgUserNotAuthenticated)
			}
			if role != required {
				return respondError(c, http.StatusForbidden, msgRoleRequired)
			}
			return next(c)
		}
	}
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

func GetUserID(c echo.Context) (uuid.UUID, error) {
	userID := c.Get(ContextKeyUserID)
	if userID == nil {
		return uuid.Nil, apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.InternalServer(msgInvalidUserIDCtx, nil)
	}

	return id, nil
}

func GetRole(c echo.Context) (client.Role, error) {
	role := c.Get(ContextKeyRole)
	if role == nil {
		return "", apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	r, ok := role.(client.Role)
	if !ok {
		return "", apperrors.InternalServer(msgInvalidRoleCtx, nil)
	}

	return r, nil
}

func GetEmail(c echo.Context) string {
	if email, ok := c.Get(ContextKeyEmail).(string); ok {
		return email
	}
	return ""
}
