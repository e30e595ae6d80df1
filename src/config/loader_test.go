package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.API.Model)
	assert.Equal(t, 800, cfg.API.MaxTokens)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 2, cfg.RAG.MaxHistory)
	assert.Equal(t, 5, cfg.RAG.MaxResults)
	assert.NotEmpty(t, cfg.RAG.DatabasePath)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Server.Addr)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api": {"model": "gpt-4o", "max_tokens": 400},
		"rag": {"max_history": 4}
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.API.Model)
	assert.Equal(t, 400, cfg.API.MaxTokens)
	assert.Equal(t, 4, cfg.RAG.MaxHistory)
	assert.Equal(t, ":8000", cfg.Server.Addr, "absent keys keep defaults")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("COURSECHAT_API_KEY", "env-key")
	t.Setenv("COURSECHAT_MODEL", "env-model")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, "env-model", cfg.API.Model)
}

func TestLoad_OpenAIKeyFallback(t *testing.T) {
	t.Setenv("COURSECHAT_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai-key", cfg.API.Key)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_BadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.MaxTokens = -1
	assert.Error(t, Validate(cfg))

	cfg = DefaultConfig()
	cfg.API.BaseURL = "not a url"
	assert.Error(t, Validate(cfg))
}
