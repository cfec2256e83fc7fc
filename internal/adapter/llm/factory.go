package llm

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/xiaot623/gogo/foodai/internal/config"
)

// ModeMock indicates mock mode should be used.
const ModeMock = "MOCK"

// NewLLMClient creates an LLM client from configuration.
// If FOODAI_MODE=MOCK, returns a MockClient; otherwise the client for LLM_PROVIDER.
func NewLLMClient(ctx context.Context, cfg *config.Config) (LLMClient, error) {
	if cfg.Mode == ModeMock {
		log.Info("FOODAI_MODE=MOCK detected, using mock LLM client")
		return NewMockClient(), nil
	}

	switch cfg.LLMProvider {
	case config.ProviderGemini:
		if cfg.GoogleAPIKey == "" {
			log.Warn("GOOGLE_API_KEY is empty; Gemini calls will fail")
		}
		client, err := NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case config.ProviderLiteLLM:
		return NewClient(cfg.LiteLLMURL, cfg.LiteLLMAPIKey, cfg.LiteLLMModel, cfg.LLMTimeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
