package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 60000, cfg.Chat.MaxContextChars)
	assert.Equal(t, 2*time.Minute, cfg.GetLLMTimeout())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().LLM.Model, cfg.LLM.Model)
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.LLM.APIKey = "file-key"
	cfg.LLM.Timeout = "30s"
	cfg.Chat.MaxContextChars = 1000
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", loaded.LLM.APIKey)
	assert.Equal(t, 30*time.Second, loaded.GetLLMTimeout())
	assert.Equal(t, 1000, loaded.Chat.MaxContextChars)
}

func TestLoad_EnvOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.LLM.APIKey = "file-key"
	require.NoError(t, cfg.Save(path))

	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("APPSENTRY_MODEL", "gemini-2.5-pro")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", loaded.LLM.APIKey)
	assert.Equal(t, "gemini-2.5-pro", loaded.LLM.Model)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "missing API key must fail")

	cfg.LLM.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	cfg.Chat.MaxContextChars = 0
	assert.Error(t, cfg.Validate())
}

func TestGetLLMTimeout_BadValueFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Timeout = "not-a-duration"
	assert.Equal(t, 2*time.Minute, cfg.GetLLMTimeout())
}
