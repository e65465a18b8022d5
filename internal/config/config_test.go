package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Languages.Source)
	assert.Equal(t, "en", cfg.Languages.Target)
	assert.Equal(t, "deepl", cfg.Providers.Translator)
	assert.Equal(t, "gpt-4o-mini", cfg.Providers.OpenAI.Model)
	assert.Equal(t, 4, cfg.Deck.MaxInFlight)
	assert.True(t, cfg.Deck.Audio)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoadFromFile(t *testing.T) {
	content := `
languages:
  source: es
  target: de
providers:
  translator: openai
deck:
  max_in_flight: 8
  grammar: false
server:
  address: ":9090"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.Languages.Source)
	assert.Equal(t, "de", cfg.Languages.Target)
	assert.Equal(t, "openai", cfg.Providers.Translator)
	assert.Equal(t, 8, cfg.Deck.MaxInFlight)
	assert.False(t, cfg.Deck.Grammar)
	assert.Equal(t, ":9090", cfg.Server.Address)
	// Untouched keys keep their defaults.
	assert.Equal(t, "nova", cfg.Providers.OpenAI.Voice)
}

func TestLoadBindsAPIKeysFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DEEPL_API_KEY", "deepl-test")
	t.Setenv("GEMINI_API_KEY", "gemini-test")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.Providers.OpenAI.APIKey)
	assert.Equal(t, "deepl-test", cfg.Providers.DeepL.APIKey)
	assert.Equal(t, "gemini-test", cfg.Providers.Gemini.APIKey)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("languages: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
