package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("USERHUB_DATABASE__URL", "postgres://env-host/userhub")
	t.Setenv("USERHUB_JWT__SECRET_KEY", "env-secret")
	t.Setenv("USERHUB_SERVER__PORT", "9999")

	cfg, err := Load("")
	require.NoError(t, err)

	// Double underscore maps to key nesting.
	assert.Equal(t, "postgres://env-host/userhub", cfg.Database.URL)
	assert.Equal(t, "env-secret", cfg.JWT.SecretKey)
	assert.Equal(t, "9999", cfg.Server.Port)

	// Keys not set in the environment keep their defaults.
	assert.Equal(t, time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingRequiredSettings(t *testing.T) {
	cfg, err := Load("")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.url")
	assert.Contains(t, err.Error(), "jwt.secret_key")
}

func TestValidate_NonPositiveTokenTTL(t *testing.T) {
	cfg := Default()
	cfg.Database.URL = "postgres://localhost/userhub"
	cfg.JWT.SecretKey = "secret"
	cfg.JWT.TokenTTL = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token_ttl")
}
