package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("airtime_service")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.True(t, cfg.DBAutoMigrate)
	assert.Equal(t, 10, cfg.ProviderTimeoutSeconds)
	assert.Equal(t, "https://tppgh.myone4all.com/api", cfg.ProviderBaseURL)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "production")
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_PROVIDER_RETAILER_ID", "RET-42")

	cfg, err := Load("airtime_service")
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "RET-42", cfg.ProviderRetailerID)
}
