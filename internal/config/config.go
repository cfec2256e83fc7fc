// Package config provides configuration for the FoodAI backend.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported LLM providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderLiteLLM   = "litellm"
)

// Config holds the FoodAI configuration.
type Config struct {
	// Server settings
	HTTPPort    int
	CORSOrigins []string

	// Database
	DatabaseURL string

	// LLM settings
	LLMProvider     string
	Mode            string
	GoogleAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	LiteLLMURL      string
	LiteLLMAPIKey   string
	LiteLLMModel    string
	LLMTimeout      time.Duration

	// Session memory
	SessionTTL      time.Duration
	SessionMaxTurns int

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 8000),
		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"*"}),
		DatabaseURL:     getEnv("DATABASE_URL", "file:foodai.db?cache=shared&mode=rwc"),
		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		Mode:            getEnv("FOODAI_MODE", ""),
		GoogleAPIKey:    getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-7-sonnet-latest"),
		LiteLLMURL:      getEnv("LITELLM_URL", "http://localhost:4000"),
		LiteLLMAPIKey:   getEnv("LITELLM_API_KEY", ""),
		LiteLLMModel:    getEnv("LITELLM_MODEL", "gpt-4o-mini"),
		LLMTimeout:      time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		SessionTTL:      time.Duration(getEnvInt("SESSION_TTL_MS", 0)) * time.Millisecond,
		SessionMaxTurns: getEnvInt("SESSION_MAX_TURNS", 0),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

// Model returns the model name configured for the selected provider.
func (c *Config) Model() string {
	switch c.LLMProvider {
	case ProviderAnthropic:
		return c.AnthropicModel
	case ProviderLiteLLM:
		return c.LiteLLMModel
	default:
		return c.GeminiModel
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
