package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.Predictor.APIBaseURL)
	assert.Equal(t, "http://mlflow-fastapi-app-1:8005", cfg.Upstream.BaseURL)
	assert.Equal(t, 100, cfg.Batch.MaxSize)
	assert.Equal(t, 2*time.Hour, cfg.Batch.StateTTL)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, "none", cfg.Storage.Provider)
	assert.False(t, cfg.Storage.ArchiveEnabled())
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CARPRICE_PREDICTOR_API_BASE_URL", "https://cars.example.com/api/")
	t.Setenv("CARPRICE_UPSTREAM_BASE_URL", "http://predictor:9000")
	t.Setenv("CARPRICE_BATCH_MAX_SIZE", "25")
	t.Setenv("CARPRICE_STORAGE_PROVIDER", "s3")
	t.Setenv("CARPRICE_STORAGE_BUCKET", "exports")
	t.Setenv("CARPRICE_CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://cars.example.com/api", cfg.Predictor.APIBaseURL)
	assert.Equal(t, "http://predictor:9000", cfg.Upstream.BaseURL)
	assert.Equal(t, 25, cfg.Batch.MaxSize)
	assert.True(t, cfg.Storage.ArchiveEnabled())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)

	t.Setenv("CARPRICE_SERVER_PORT", ":7070")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Port)
}
