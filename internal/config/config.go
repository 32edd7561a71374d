package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
)

type Config struct {
	APIPort  string
	LogLevel string

	PostgresDSN string

	OpenAIAPIKey    string
	OpenAIBaseURL   string
	EmbedModel      string
	ChatModel       string
	ChatTemperature float64

	RAGTopK         int
	RAGSourceFilter string
}

// Load reads configuration from the environment. Missing secrets are a
// startup failure: the service must not reach any provider without them.
func Load() (Config, error) {
	cfg := Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		OpenAIBaseURL:   mustEnv("OPENAI_BASE_URL", ""),
		EmbedModel:      mustEnv("EMBED_MODEL", "text-embedding-3-small"),
		ChatModel:       mustEnv("CHAT_MODEL", "gpt-4o-mini"),
		ChatTemperature: mustEnvFloat("CHAT_TEMPERATURE", 0.2),

		RAGTopK:         mustEnvInt("RAG_TOP_K", 8),
		RAGSourceFilter: mustEnv("RAG_SOURCE_FILTER", "human-nutrition-text.pdf"),
	}

	var err error
	if cfg.OpenAIAPIKey, err = requireEnv("OPENAI_API_KEY"); err != nil {
		return Config{}, domain.WrapError(domain.ErrConfiguration, "load config", err)
	}
	if cfg.PostgresDSN, err = requireEnv("POSTGRES_DSN"); err != nil {
		return Config{}, domain.WrapError(domain.ErrConfiguration, "load config", err)
	}
	return cfg, nil
}

func requireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return v, nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
