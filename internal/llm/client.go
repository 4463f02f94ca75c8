// Package llm is the text-generation collaborator used for briefings and the
// intel feed.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
)

// Client is the interface for LLM providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (*Response, error)
}

// Response holds the result of an LLM completion.
type Response struct {
	Content    string
	Provider   string
	TokensUsed int
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	Model    string
	URL      string
	APIKey   string
	Timeout  time.Duration
}

// ConfigFromSettings builds a Config from persisted settings. The API key is
// never stored in settings and is passed separately.
func ConfigFromSettings(s models.Settings, apiKey string) Config {
	timeout := time.Duration(s.LLMTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(constants.DefaultLLMTimeoutSec) * time.Second
	}
	return Config{
		Provider: s.LLMProvider,
		Model:    s.LLMModel,
		URL:      s.LLMURL,
		APIKey:   apiKey,
		Timeout:  timeout,
	}
}

// NewClient creates an LLM client based on the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch cfg.Provider {
	case constants.LLMProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires %s or a keyring entry", constants.EnvLLMAPIKey)
		}
		model := cfg.Model
		if model == "" || model == constants.DefaultLLMModel {
			model = defaultGeminiModel
		}
		return NewGemini(cfg.APIKey, model, cfg.Timeout), nil
	case constants.LLMProviderOllama, "":
		url := cfg.URL
		if url == "" {
			url = constants.DefaultLLMURL
		}
		model := cfg.Model
		if model == "" {
			model = constants.DefaultLLMModel
		}
		return NewOllama(url, model, cfg.Timeout), nil
	case constants.LLMProviderMock:
		return NewDryRun(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
