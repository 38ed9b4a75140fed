package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	AI      AIConfig      `json:"ai"`
	Wizard  WizardConfig  `json:"wizard"`
	History HistoryConfig `json:"history"`
	Mocks   MockConfig    `json:"mocks"`
}

type AIConfig struct {
	Provider string `json:"provider"` // "openrouter", "groq" or "openai"
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
	Endpoint string `json:"endpoint"` // overrides the provider default

	// Optional second provider consulted when the first is unreachable.
	FallbackProvider string `json:"fallback_provider"`
	FallbackAPIKey   string `json:"fallback_api_key"`
	FallbackModel    string `json:"fallback_model"`
}

type WizardConfig struct {
	MaxSuggestions int `json:"max_suggestions"`
}

type HistoryConfig struct {
	StoragePath string `json:"storage_path"`
}

// MockConfig swaps the completion service for a canned one, for local
// development without an API key.
type MockConfig struct {
	Enable bool `json:"enable"`
}

func Load() (*Config, error) {
	maxSuggestions, err := intFromEnv("MAX_SUGGESTIONS", 5)
	if err != nil {
		return nil, err
	}

	config := &Config{
		AI: AIConfig{
			Provider:         getEnvOrDefault("AI_PROVIDER", "openrouter"),
			APIKey:           os.Getenv("AI_API_KEY"),
			Model:            getEnvOrDefault("AI_MODEL", "openai/gpt-5.2"),
			Endpoint:         os.Getenv("AI_ENDPOINT"),
			FallbackProvider: os.Getenv("AI_FALLBACK_PROVIDER"),
			FallbackAPIKey:   os.Getenv("AI_FALLBACK_API_KEY"),
			FallbackModel:    os.Getenv("AI_FALLBACK_MODEL"),
		},
		Wizard: WizardConfig{
			MaxSuggestions: maxSuggestions,
		},
		History: HistoryConfig{
			StoragePath: getEnvOrDefault("SAVED_RECIPES_PATH", "./data/saved_recipes.json"),
		},
		Mocks: MockConfig{
			Enable: os.Getenv("ENABLE_MOCKS") == "true",
		},
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intFromEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
