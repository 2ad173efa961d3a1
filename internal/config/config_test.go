package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, "disk", cfg.StorageBackend)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL_MINUTES", "5")
	t.Setenv("STORAGE_BACKEND", "r2")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "r2", cfg.StorageBackend)
}

func TestLoad_BadTTLFallsBack(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("TOKEN_TTL_MINUTES", "soon")

	cfg := Load()
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}
