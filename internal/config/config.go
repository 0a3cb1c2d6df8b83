package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Question source modes.
const (
	QuestionSourceInline = "inline"
	QuestionSourceStatic = "static"
	QuestionSourceLookup = "lookup"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Relay    RelayConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type UpstreamConfig struct {
	// URL of the AIScheduleConfirmation endpoint.
	URL string
	// LookupURL serves the available dates & questions lookup.
	LookupURL string
	// SubscriptionKey is the Ocp-Apim-Subscription-Key credential. May be
	// empty at startup; forwarding endpoints fail until it is set.
	SubscriptionKey string
	// Timeout for forwarded calls, in seconds.
	Timeout int
}

type RelayConfig struct {
	// QuestionSource selects where question templates come from:
	// inline (request-supplied JSON), static (built-in list), or lookup.
	QuestionSource string
	// APIKey, when set, requires inbound callers to present it.
	APIKey string
}

// Load reads configuration from environment variables, loading a local
// .env file first when one exists.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8000"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 60),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Upstream: UpstreamConfig{
			URL:             getEnv("RLM_API_URL", "https://apiqa.ryder.com/rlm/ryderview/capacitymanagement/api/ScheduleAppointment/AIScheduleConfirmation"),
			LookupURL:       getEnv("RLM_LOOKUP_URL", "https://apiqa.ryder.com/rlm/ryderview/capacitymanagement/api/ScheduleAppointment/AvailableDatesAndQuestions"),
			SubscriptionKey: getEnv("API_HEADER_KEY", ""),
			Timeout:         getEnvAsInt("UPSTREAM_TIMEOUT", 30),
		},
		Relay: RelayConfig{
			QuestionSource: getEnv("QUESTION_SOURCE", QuestionSourceInline),
			APIKey:         getEnv("RELAY_API_KEY", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Upstream.URL == "" {
		return fmt.Errorf("RLM_API_URL is required")
	}

	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}

	switch c.Relay.QuestionSource {
	case QuestionSourceInline, QuestionSourceStatic, QuestionSourceLookup:
	default:
		return fmt.Errorf("invalid question source: %s (must be inline, static, or lookup)", c.Relay.QuestionSource)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
