package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Generation backend
	LLMProvider     string
	AnthropicAPIKey string
	GroqAPIKey      string
	ModelName       string

	// Dialogue behavior
	MaxConversationHistory int
	ContentRating          string
	NPCDataDir             string

	// Optional event broadcasting. Empty disables it.
	EventsRedisURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                   getEnv("PORT", "8080"),
		Environment:            getEnv("ENVIRONMENT", "development"),
		LogLevel:               parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LLMProvider:            getEnv("LLM_PROVIDER", "anthropic"),
		AnthropicAPIKey:        getEnv("ANTHROPIC_API_KEY", ""),
		GroqAPIKey:             getEnv("GROQ_API_KEY", ""),
		ModelName:              getEnv("MODEL_NAME", "claude-3-5-haiku-latest"),
		MaxConversationHistory: getEnvInt("MAX_CONVERSATION_HISTORY", 20),
		ContentRating:          getEnv("CONTENT_RATING", ""),
		NPCDataDir:             getEnv("NPC_DATA_DIR", "data/npcs"),
		EventsRedisURL:         getEnv("EVENTS_REDIS_URL", ""),
	}

	if cfg.MaxConversationHistory < 2 {
		return nil, fmt.Errorf("MAX_CONVERSATION_HISTORY must be at least 2, got %d", cfg.MaxConversationHistory)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
