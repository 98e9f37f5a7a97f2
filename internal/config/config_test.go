package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "postgres-secret")
	t.Setenv("REGION", "us-east-1")
	t.Setenv("BUCKET_NAME", "portal-uploads")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoad_Defaults(t *testing.T) {
	validEnv(t)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "contentportal", cfg.Database.Database)
	assert.Equal(t, 15*time.Minute, cfg.Export.PresignedURLExpiry)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	validEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	validEnv(t)
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DurationFromMinutes(t *testing.T) {
	validEnv(t)
	t.Setenv("JWT_EXPIRY_MINUTES", "30")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.JWT.ExpiryDuration)
}

func TestDSN(t *testing.T) {
	dbCfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "pw",
		Database: "portal", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=portal sslmode=disable", dbCfg.DSN())
}
