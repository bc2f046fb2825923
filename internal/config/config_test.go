package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.Predictor.BaseURL)
	assert.Equal(t, "en", cfg.Language)
	assert.Empty(t, cfg.Session.RedisAddr)
	assert.Equal(t, int64(10*1024*1024), cfg.Server.MaxRequestSize)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heliowatch.yaml")
	content := `
server:
  port: 9090
  readTimeout: 10s
predictor:
  baseUrl: http://model:5000
  pollInterval: 45s
session:
  redisAddr: redis:6379
  ttl: 1h
language: fr
emissionsFactor: 0.0005
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, time.Duration(cfg.Server.ReadTimeout))
	assert.Equal(t, "http://model:5000", cfg.Predictor.BaseURL)
	assert.Equal(t, 45*time.Second, time.Duration(cfg.Predictor.PollInterval))
	assert.Equal(t, "redis:6379", cfg.Session.RedisAddr)
	assert.Equal(t, time.Hour, time.Duration(cfg.Session.TTL))
	assert.Equal(t, "fr", cfg.Language)
	assert.Equal(t, 0.0005, cfg.EmissionsFactor)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  readTimeout: soon\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HELIOWATCH_PORT", "7070")
	t.Setenv("HELIOWATCH_PREDICT_URL", "http://other:5000")
	t.Setenv("HELIOWATCH_REDIS_ADDR", "cache:6379")
	t.Setenv("HELIOWATCH_LANG", "fr")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "http://other:5000", cfg.Predictor.BaseURL)
	assert.Equal(t, "cache:6379", cfg.Session.RedisAddr)
	assert.Equal(t, "fr", cfg.Language)
}

func TestDurationOr(t *testing.T) {
	var zero Duration
	assert.Equal(t, 15*time.Second, zero.Or(15*time.Second))
	assert.Equal(t, time.Minute, Duration(time.Minute).Or(15*time.Second))
}
