package auth

import (
	"testing"
	"time"

	"content-portal/internal/domain/client"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret-at-least-32-characters!!", time.Hour)
	userID := uuid.New()

	token, err := svc.Generate(userID, "admin@example.com", client.RoleAdmin)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, client.RoleAdmin, claims.Role)
}

func TestJWTService_VerifyExpired(t *testing.T) {
	svc := NewJWTService("test-secret-at-least-32-characters!!", -time.Minute)

	token, err := svc.Generate(uuid.New(), "x@example.com", client.RoleClient)
	assert.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_VerifyWrongSecret(t *testing.T) {
	issuer := NewJWTService("test-secret-at-least-32-characters!!", time.Hour)
	verifier := NewJWTService("another-secret-also-32-characters!!!", time.Hour)

	token, err := issuer.Generate(uuid.New(), "x@example.com", client.RoleClient)
	assert.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_VerifyGarbage(t *testing.T) {
	svc := NewJWTService("test-secret-at-least-32-characters!!", time.Hour)

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)
}
