package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for ia-booster
type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Catalog CatalogConfig
	State   StateConfig
	Redis   RedisConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
}

// LLMConfig holds the OpenRouter (OpenAI-compatible) provider configuration
type LLMConfig struct {
	APIKey        string
	BaseURL       string
	AnalysisModel string
	ChatModel     string
	Timeout       time.Duration
	SiteURL       string
	SiteName      string
}

// Configured reports whether a provider credential is present
func (c LLMConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// CatalogConfig holds the tool catalog configuration
type CatalogConfig struct {
	File string
}

// StateConfig holds client state store configuration
type StateConfig struct {
	Backend         string // memory | redis
	ChatTTL         time.Duration
	JanitorInterval time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level slog.Level
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		LLM: LLMConfig{
			APIKey:        getEnv("OPENROUTER_API_KEY", ""),
			BaseURL:       getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			AnalysisModel: getEnv("LLM_ANALYSIS_MODEL", "deepseek/deepseek-r1-0528:free"),
			ChatModel:     getEnv("LLM_CHAT_MODEL", "deepseek/deepseek-r1"),
			Timeout:       getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
			SiteURL:       getEnv("LLM_SITE_URL", ""),
			SiteName:      getEnv("LLM_SITE_NAME", "IA Booster Assistant"),
		},
		Catalog: CatalogConfig{
			File: getEnv("CATALOG_FILE", "./public/outils_ia_etendus.json"),
		},
		State: StateConfig{
			Backend:         getEnv("STATE_BACKEND", "memory"),
			ChatTTL:         getEnvAsDuration("STATE_CHAT_TTL", 24*time.Hour),
			JanitorInterval: getEnvAsDuration("STATE_JANITOR_INTERVAL", 10*time.Minute),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level: getEnvAsLevel("LOG_LEVEL", slog.LevelInfo),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
// A missing provider credential is not an error: analyses degrade to the fallback scorer.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.LLM.BaseURL == "" {
		return fmt.Errorf("llm base url is required")
	}

	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm timeout must be positive: %s", c.LLM.Timeout)
	}

	switch c.State.Backend {
	case "memory":
	case "redis":
		if c.Redis.Address == "" {
			return fmt.Errorf("redis address is required for the redis state backend")
		}
	default:
		return fmt.Errorf("unknown state backend: %q", c.State.Backend)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsLevel(key string, defaultValue slog.Level) slog.Level {
	if value, exists := os.LookupEnv(key); exists {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return defaultValue
}
