package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// OpenAI configuration
	OpenAIAPIKey string
	OpenAIAPIURL string
	OpenAIModel  string

	// AI usage quota: calls per user per trailing window
	AIUsageWindow time.Duration
	AIUsageLimit  int
}

const (
	defaultOpenAIAPIURL = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel  = "gpt-4.1-mini"

	// DefaultAIUsageWindow is the trailing interval over which AI calls
	// are counted against a user's quota.
	DefaultAIUsageWindow = 24 * time.Hour
	// DefaultAIUsageLimit is the number of AI calls allowed per window.
	DefaultAIUsageLimit = 10
)

// Load creates a new Config instance from environment variables.
// The OpenAI API key may alternatively be supplied via a secret file
// named by OPENAI_API_KEY_FILE.
func Load() (*Config, error) {
	cfg := &Config{
		ServerHost:    getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "munchora"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		OpenAIAPIURL:  getEnv("OPENAI_API_URL", defaultOpenAIAPIURL),
		OpenAIModel:   getEnv("OPENAI_MODEL", defaultOpenAIModel),
		AIUsageWindow: DefaultAIUsageWindow,
		AIUsageLimit:  DefaultAIUsageLimit,
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if windowStr := os.Getenv("AI_USAGE_WINDOW"); windowStr != "" {
		window, err := time.ParseDuration(windowStr)
		if err != nil {
			return nil, fmt.Errorf("invalid AI_USAGE_WINDOW value %q: %w", windowStr, err)
		}
		cfg.AIUsageWindow = window
	}

	if limitStr := os.Getenv("AI_USAGE_LIMIT"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, fmt.Errorf("invalid AI_USAGE_LIMIT value %q: %w", limitStr, err)
		}
		cfg.AIUsageLimit = limit
	}

	apiKey, err := loadAPIKey()
	if err != nil {
		return nil, err
	}
	cfg.OpenAIAPIKey = apiKey

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

// loadAPIKey reads the OpenAI API key from the environment or from a
// Docker-style secret file.
func loadAPIKey() (string, error) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key, nil
	}

	keyFile := os.Getenv("OPENAI_API_KEY_FILE")
	if keyFile == "" {
		return "", fmt.Errorf("OPENAI_API_KEY or OPENAI_API_KEY_FILE must be set")
	}

	keyBytes, err := os.ReadFile(keyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}

	key := strings.TrimSpace(string(keyBytes))
	if key == "" {
		return "", fmt.Errorf("API key file is empty")
	}
	return key, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
