package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DESCRIBER_PROVIDER", "")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DescriberProvider)
	assert.Empty(t, cfg.DescriberAPIKey)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GOOGLE_PLACES_API_KEY", "places-key")
	t.Setenv("DESCRIBER_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "places-key", cfg.GooglePlacesAPIKey)
	assert.Equal(t, "gemini", cfg.DescriberProvider)
	assert.Equal(t, "gemini-key", cfg.DescriberAPIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.DescriberModel)
}

func TestLoadReadsConfigFile(t *testing.T) {
	t.Setenv("SERPER_API_KEY", "")
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serper_api_key: from-file\nlog_level: DEBUG\n"), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.SerperAPIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDotEnvIgnoresMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
