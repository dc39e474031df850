package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("APIFY_API_TOKEN", "")
	path := filepath.Join(t.TempDir(), "nested", "trendscout.yaml")
	cfg := Default()
	cfg.Similar.MaxResults = 7
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Similar.MaxResults)
	assert.Equal(t, 6*time.Hour, got.Discovery.CacheTTL)
	assert.Equal(t, 0.5, got.Discovery.RPS)
	assert.Equal(t, "clockworks/tiktok-scraper", got.Apify.TikTokActor)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, got.Refresh.QuietHours)
	assert.Equal(t, 6*time.Hour, got.Refresh.Interval)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Search.MinViews, got.Search.MinViews)
}

func TestResolveEnvFillsSecrets(t *testing.T) {
	t.Setenv("APIFY_API_TOKEN", "apify-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg := Default()
	cfg.ResolveEnv()
	assert.Equal(t, "apify-token", cfg.Apify.Token)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAIAPIKey)
	assert.NoError(t, cfg.RequireApify())
}

func TestRequireApify(t *testing.T) {
	cfg := Default()
	err := cfg.RequireApify()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCredential))
	assert.Contains(t, err.Error(), ".env")
}

func TestResolveProvider(t *testing.T) {
	tests := []struct {
		name string
		cfg  LLMConfig
		want string
	}{
		{"none without keys", LLMConfig{Provider: "auto"}, "none"},
		{"gemini first", LLMConfig{GeminiAPIKey: "g", OpenAIAPIKey: "o", AnthropicAPIKey: "a"}, "gemini"},
		{"openai before anthropic", LLMConfig{OpenAIAPIKey: "o", AnthropicAPIKey: "a"}, "openai"},
		{"anthropic", LLMConfig{AnthropicAPIKey: "a"}, "anthropic"},
		{"explicit wins", LLMConfig{Provider: "none", GeminiAPIKey: "g"}, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ResolveProvider())
		})
	}
}
