// In file: cmd/gateway/config_test.go
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TOGETHER_API_KEY", "OPENWEATHERMAP_API_KEY", "TIMEZONEDB_API_KEY",
		"OPENCAGE_API_KEY", "DEMO_MODE", "DEBUG", "PORT", "MODELS_FILE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("GIN_MODE", "release")
}

func TestLoadConfig_RequiresTogetherKey(t *testing.T) {
	clearConfigEnv(t)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOGETHER_API_KEY")
}

func TestLoadConfig_DemoModeSkipsKeyCheck(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DEMO_MODE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.DemoMode)
	assert.Empty(t, cfg.TogetherAPIKey)
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("TOGETHER_API_KEY", "tk-123")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "tk-123", cfg.TogetherAPIKey)
	assert.Equal(t, "5001", cfg.Port)
	assert.False(t, cfg.Debug)
}

func TestLoadConfig_ReadsAllKeys(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("TOGETHER_API_KEY", "tk-123")
	t.Setenv("OPENWEATHERMAP_API_KEY", "owm-key")
	t.Setenv("TIMEZONEDB_API_KEY", "tzdb-key")
	t.Setenv("OPENCAGE_API_KEY", "oc-key")
	t.Setenv("PORT", "8080")
	t.Setenv("DEBUG", "1")
	t.Setenv("MODELS_FILE", "models.yaml")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "owm-key", cfg.OpenWeatherMapKey)
	assert.Equal(t, "tzdb-key", cfg.TimeZoneDBKey)
	assert.Equal(t, "oc-key", cfg.OpenCageKey)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "models.yaml", cfg.ModelsFile)
}

func TestEnvBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "yes"} {
		t.Setenv("SOME_FLAG", v)
		assert.True(t, envBool("SOME_FLAG"), v)
	}
	for _, v := range []string{"", "false", "0", "no"} {
		t.Setenv("SOME_FLAG", v)
		assert.False(t, envBool("SOME_FLAG"), v)
	}
}
