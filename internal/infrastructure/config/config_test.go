package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bizdash", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "tenant-dev", cfg.App.TenantID)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 300*time.Millisecond, cfg.Mock.DelayMin)
	assert.Equal(t, "memory", cfg.Settings.Backend)
	assert.Equal(t, "0/15 9-18 * * *", cfg.Scheduler.CronSchedule)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level, "development defaults to debug")
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "bizdash", cfg.Telemetry.ServiceName, "service name follows app name")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BIZDASH_APP_TENANT_ID", "tenant-acme")
	t.Setenv("BIZDASH_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tenant-acme", cfg.App.TenantID)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestProductionRequiresBackend(t *testing.T) {
	t.Setenv("BIZDASH_APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")

	t.Setenv("BIZDASH_API_BASE_URL", "https://api.example.com")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.token")

	t.Setenv("BIZDASH_API_TOKEN", "secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level, "production defaults to info/json")
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("relative base url rejected", func(t *testing.T) {
		cfg := base()
		cfg.API.BaseURL = "/api"
		assert.Error(t, cfg.validate())
	})

	t.Run("unknown settings backend rejected", func(t *testing.T) {
		cfg := base()
		cfg.Settings.Backend = "s3"
		assert.Error(t, cfg.validate())
	})

	t.Run("inverted mock delay window rejected", func(t *testing.T) {
		cfg := base()
		cfg.Mock.DelayMin = time.Second
		cfg.Mock.DelayMax = time.Millisecond
		assert.Error(t, cfg.validate())
	})
}

func TestMockMode(t *testing.T) {
	cases := []struct {
		name    string
		env     string
		baseURL string
		mock    bool
	}{
		{"development without backend", "development", "", true},
		{"development with backend still mocks", "development", "https://api.example.com", true},
		{"staging without backend", "staging", "", true},
		{"staging with backend goes live", "staging", "https://api.example.com", false},
		{"production with backend goes live", "production", "https://api.example.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.App.Env = tc.env
			cfg.API.BaseURL = tc.baseURL
			assert.Equal(t, tc.mock, cfg.MockMode())
		})
	}
}
