package env

import (
	"errors"
	"os"

	"github.com/savezra/whatsapp-bot/internal/config"
)

const (
	aiProviderEnvName = "AI_PROVIDER"
	aiAPIKeyEnvName   = "AI_API_KEY"
	aiModelEnvName    = "AI_MODEL"
	aiBaseURLEnvName  = "AI_BASE_URL"
)

type aiConfig struct {
	provider string
	apiKey   string
	model    string
	baseURL  string
}

func NewAIConfig() (config.AIConfig, error) {
	apiKey := os.Getenv(aiAPIKeyEnvName)
	if apiKey == "" {
		return nil, errors.New("AI_API_KEY is required")
	}

	provider := os.Getenv(aiProviderEnvName)
	if provider == "" {
		provider = "openai"
	}

	model := os.Getenv(aiModelEnvName)
	if model == "" {
		switch provider {
		case "gemini":
			model = "gemini-2.0-flash"
		default:
			model = "llama-3.3-70b-versatile"
		}
	}

	baseURL := os.Getenv(aiBaseURLEnvName)
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &aiConfig{
		provider: provider,
		apiKey:   apiKey,
		model:    model,
		baseURL:  baseURL,
	}, nil
}

func (cfg *aiConfig) Provider() string {
	return cfg.provider
}

func (cfg *aiConfig) APIKey() string {
	return cfg.apiKey
}

func (cfg *aiConfig) Model() string {
	return cfg.model
}

func (cfg *aiConfig) BaseURL() string {
	return cfg.baseURL
}
