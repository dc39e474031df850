package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingCredential is returned when an operation needs a secret that is not configured.
var ErrMissingCredential = errors.New("missing credential")

// Config is the application's configuration model.
// It captures credentials, search defaults, similar-account settings and storage.
type Config struct {
	Apify     ApifyConfig     `yaml:"apify"`
	LLM       LLMConfig       `yaml:"llm"`
	Search    SearchConfig    `yaml:"search"`
	Similar   SimilarConfig   `yaml:"similar"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Storage   StorageConfig   `yaml:"storage"`
	Redis     RedisConfig     `yaml:"redis"`
	Budget    BudgetConfig    `yaml:"budget"`
	Server    ServerConfig    `yaml:"server"`
	Refresh   RefreshConfig   `yaml:"refresh"`
	LogLevel  string          `yaml:"logLevel"`
}

type ApifyConfig struct {
	// If empty, read from env APIFY_API_TOKEN
	Token          string  `yaml:"token"`
	BaseURL        string  `yaml:"baseURL"`
	TikTokActor    string  `yaml:"tiktokActor"`
	InstagramActor string  `yaml:"instagramActor"`
	RelatedActor   string  `yaml:"relatedActor"`
	RPS            float64 `yaml:"rps"`
	Burst          int     `yaml:"burst"`
	MaxAttempts    int     `yaml:"maxAttempts"`
	BaseBackoffMS  int     `yaml:"baseBackoffMs"`
}

type LLMConfig struct {
	// "auto", "gemini", "openai", "anthropic" or "none". auto picks by key presence.
	Provider    string `yaml:"provider"`
	GeminiModel string `yaml:"geminiModel"`
	OpenAIModel string `yaml:"openaiModel"`
	ClaudeModel string `yaml:"claudeModel"`
	// Keys; if empty, read from GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY
	GeminiAPIKey    string `yaml:"geminiApiKey"`
	OpenAIAPIKey    string `yaml:"openaiApiKey"`
	AnthropicAPIKey string `yaml:"anthropicApiKey"`
}

type SearchConfig struct {
	MaxResults      int    `yaml:"maxResults"`
	DaysAgo         int    `yaml:"daysAgo"`
	MinViews        int    `yaml:"minViews"`
	MinInteractions int    `yaml:"minInteractions"`
	SortBy          string `yaml:"sortBy"`
	DeepDiveResults int    `yaml:"deepDiveResults"`
}

type SimilarConfig struct {
	MaxResults    int `yaml:"maxResults"`
	LimitPerTag   int `yaml:"limitPerTag"`
	SeedPostLimit int `yaml:"seedPostLimit"`
}

type DiscoveryConfig struct {
	Country  string        `yaml:"country"`
	Limit    int           `yaml:"limit"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
	// Creative Center request rate.
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type StorageConfig struct {
	DBPath string `yaml:"dbPath"`
}

type RedisConfig struct {
	// Optional; empty disables the trending cache. If empty, read from env REDIS_URL
	URL string `yaml:"url"`
}

type BudgetConfig struct {
	// Max paid scraping runs per hour and per day; 0 disables the limit
	MaxPerHour int `yaml:"maxPerHour"`
	MaxPerDay  int `yaml:"maxPerDay"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MetricsAddr string `yaml:"metricsAddr"`
}

type RefreshConfig struct {
	// Keywords re-searched by the watch command
	Keywords   []string      `yaml:"keywords"`
	Interval   time.Duration `yaml:"interval"`
	QuietHours []int         `yaml:"quietHours"` // UTC hours without refreshes
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Apify: ApifyConfig{
			BaseURL:        "https://api.apify.com/v2",
			TikTokActor:    "clockworks/tiktok-scraper",
			InstagramActor: "apify/instagram-scraper",
			RelatedActor:   "scrapio/instagram-related-person-scraper",
			RPS:            1,
			Burst:          4,
			MaxAttempts:    3,
			BaseBackoffMS:  1000,
		},
		LLM: LLMConfig{
			Provider:    "auto",
			GeminiModel: "gemini-2.0-flash",
			OpenAIModel: "gpt-4o-mini",
			ClaudeModel: "claude-haiku-4-5-20251001",
		},
		Search:    SearchConfig{MaxResults: 100, DaysAgo: 10, MinViews: 10_000, MinInteractions: 500, SortBy: "engagement_rate", DeepDiveResults: 50},
		Similar:   SimilarConfig{MaxResults: 20, LimitPerTag: 25, SeedPostLimit: 12},
		Discovery: DiscoveryConfig{Country: "US", Limit: 35, CacheTTL: 6 * time.Hour, RPS: 0.5, Burst: 1},
		Storage:   StorageConfig{DBPath: "./data/trends.db"},
		Budget:    BudgetConfig{MaxPerHour: 20, MaxPerDay: 100},
		Server:    ServerConfig{Addr: ":8080"},
		Refresh:   RefreshConfig{Interval: 6 * time.Hour, QuietHours: []int{0, 1, 2, 3, 4, 5}},
		LogLevel:  "info",
	}
}

// LoadDotEnv loads .env into the process environment. A missing file is not an error.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// ResolveEnv fills in config fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if c.Apify.Token == "" {
		c.Apify.Token = os.Getenv("APIFY_API_TOKEN")
	}
	if c.LLM.GeminiAPIKey == "" {
		c.LLM.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.LLM.OpenAIAPIKey == "" {
		c.LLM.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.LLM.AnthropicAPIKey == "" {
		c.LLM.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if c.Redis.URL == "" {
		c.Redis.URL = os.Getenv("REDIS_URL")
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" && c.Server.MetricsAddr == "" {
		c.Server.MetricsAddr = v
	}
}

// ResolveProvider returns the LLM provider name to construct.
// An explicit provider wins; "auto" (or empty) picks gemini > openai > anthropic > none by key presence.
func (c LLMConfig) ResolveProvider() string {
	switch c.Provider {
	case "", "auto":
	default:
		return c.Provider
	}
	switch {
	case c.GeminiAPIKey != "":
		return "gemini"
	case c.OpenAIAPIKey != "":
		return "openai"
	case c.AnthropicAPIKey != "":
		return "anthropic"
	}
	return "none"
}

// RequireApify reports a configuration error when no Apify token is set.
func (c Config) RequireApify() error {
	if c.Apify.Token == "" {
		return fmt.Errorf("%w: APIFY_API_TOKEN is not set; add it to .env to enable scraping", ErrMissingCredential)
	}
	return nil
}

// Load reads YAML config from path and resolves env. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ResolveEnv()
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
