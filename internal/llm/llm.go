package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"trendscout/internal/config"
	"trendscout/internal/util"
)

var (
	// ErrNoProvider is returned by the none provider and for unknown provider names.
	ErrNoProvider = errors.New("llm: no provider configured")
	// ErrMalformedJSON means a generation did not contain the expected JSON document.
	ErrMalformedJSON = errors.New("llm: malformed JSON in response")
)

// Provider names an LLM backend. It is resolved once by the config layer and injected here.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderNone      Provider = "none"
)

// ParseProvider maps a configured name to a Provider.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderNone:
		return p, nil
	}
	return ProviderNone, fmt.Errorf("%w: unknown provider %q", ErrNoProvider, name)
}

// Request is a single-turn generation.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Provider() Provider
}

// New constructs the generator for p using the keys and models in cfg.
func New(ctx context.Context, p Provider, cfg config.LLMConfig) (Generator, error) {
	switch p {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY", config.ErrMissingCredential)
		}
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY", config.ErrMissingCredential)
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, ""), nil
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY", config.ErrMissingCredential)
		}
		return NewAnthropic(AnthropicConfig{APIKey: cfg.AnthropicAPIKey, Model: cfg.ClaudeModel}), nil
	case ProviderNone:
		return None{}, nil
	}
	return nil, fmt.Errorf("%w: unknown provider %q", ErrNoProvider, p)
}

// None is the provider used when no key is configured. Every call fails with ErrNoProvider.
type None struct{}

func (None) Generate(context.Context, Request) (string, error) { return "", ErrNoProvider }
func (None) Provider() Provider                                { return ProviderNone }

// ExtractJSON decodes the JSON document in text into v, tolerating a surrounding markdown code fence.
func ExtractJSON(text string, v any) error {
	raw := StripCodeFence(text)
	if raw == "" {
		return fmt.Errorf("%w: empty response", ErrMalformedJSON)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %v (response: %q)", ErrMalformedJSON, err, util.Truncate(raw, 80, "..."))
	}
	return nil
}

// StripCodeFence removes a leading ``` or ```json fence and its closing fence.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if end := strings.Index(s, "```"); end >= 0 {
		s = s[:end]
	}
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(s)
}
