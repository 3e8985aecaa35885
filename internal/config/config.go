// Package config provides configuration for the honeypot orchestrator.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the orchestrator configuration.
type Config struct {
	// Server settings
	HTTPPort     int
	InternalPort int

	// Shared secret checked on the inbound message endpoint (X-API-Key).
	APIKey string

	// Audit log database
	DatabaseURL string

	// LLM settings
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Collector callback
	CallbackURL     string
	CallbackTimeout time.Duration

	// Finalization policy inputs
	MaxMessages   int // message-count threshold that forces finalization
	HistoryWindow int // prior turns included in the classification prompt

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		InternalPort:    getEnvInt("INTERNAL_PORT", 8081),
		APIKey:          getEnv("API_KEY", ""),
		DatabaseURL:     getEnv("DATABASE_URL", "file:honeytrap.db?cache=shared&mode=rwc"),
		LLMBaseURL:      getEnv("LLM_BASE_URL", "http://localhost:4000"),
		LLMAPIKey:       getEnv("LLM_API_KEY", ""),
		LLMModel:        getEnv("LLM_MODEL", "gemini-2.5-flash"),
		LLMTimeout:      time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		CallbackURL:     getEnv("CALLBACK_URL", ""),
		CallbackTimeout: time.Duration(getEnvInt("CALLBACK_TIMEOUT_MS", 15000)) * time.Millisecond,
		MaxMessages:     getEnvInt("MAX_MESSAGES", 10),
		HistoryWindow:   getEnvInt("HISTORY_WINDOW", 3),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
	return cfg
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
