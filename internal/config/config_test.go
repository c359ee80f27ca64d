package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.True(t, cfg.LLM.JSONMode)
	assert.Equal(t, 60*time.Second, cfg.LLM.TimeoutDuration())
	assert.Equal(t, "https://api.zippopotam.us", cfg.Location.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Location.TimeoutDuration())
	assert.Equal(t, 30*24*time.Hour, cfg.Location.CacheTTLDuration())
	assert.Equal(t, "0 30 3 * * *", cfg.Export.PruneCron)
	assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
	assert.Contains(t, cfg.CORS.AllowedHeaders, "X-API-Key")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_MODEL", "gemini-test")
	t.Setenv("LLM_APIKEY", "key-123")
	t.Setenv("LOCATION_CACHEENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-test", cfg.LLM.Model)
	assert.Equal(t, "key-123", cfg.LLM.APIKey)
	assert.True(t, cfg.Location.CacheEnabled)
}

func TestLoad_ProviderKeyFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-fallback", cfg.LLM.APIKey)
}

type mapSource map[string]string

func (m mapSource) GetSecretOrEnv(_ context.Context, secretName, _ string) (string, error) {
	v, ok := m[secretName]
	if !ok {
		return "", errors.New("missing")
	}
	return v, nil
}

func TestApplySecrets(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Password = "local"
	cfg.Auth.JWTSecret = "keep-me"

	applySecrets(context.Background(), cfg, mapSource{
		"DATABASE-PASSWORD": "vault-pass",
		"LLM-API-KEY":       "vault-llm",
		"AUTH-API-KEY":      "vault-api",
	})

	assert.Equal(t, "vault-pass", cfg.Database.Password)
	assert.Equal(t, "vault-llm", cfg.LLM.APIKey)
	assert.Equal(t, "vault-api", cfg.Auth.APIKey)
	assert.Equal(t, "keep-me", cfg.Auth.JWTSecret)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "estimates", SSLMode: "require"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=estimates sslmode=require", d.ConnectionString())
}
