package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL          string
	APITimeout          time.Duration
	RequestsPerSecond   float64
	RequestBurst        int
	PendingPollInterval time.Duration
	InspectorAddr       string
	SessionFile         string
	SessionPassphrase   string
	SessionDSN          string
	LoginEmail          string
	LoginPassword       string
	DefaultPageLimit    int
	Environment         string
}

func Load() Config {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	return Config{
		APIBaseURL:          getEnv("HRSYNC_API_BASE_URL", ""),
		APITimeout:          getEnvDuration("HRSYNC_API_TIMEOUT", 30*time.Second),
		RequestsPerSecond:   getEnvFloat("HRSYNC_REQUESTS_PER_SECOND", 10),
		RequestBurst:        getEnvInt("HRSYNC_REQUEST_BURST", 5),
		PendingPollInterval: getEnvDuration("HRSYNC_PENDING_POLL_INTERVAL", 30*time.Second),
		InspectorAddr:       getEnv("HRSYNC_INSPECTOR_ADDR", ":7311"),
		SessionFile:         getEnv("HRSYNC_SESSION_FILE", ""),
		SessionPassphrase:   getEnv("HRSYNC_SESSION_PASSPHRASE", ""),
		SessionDSN:          getEnv("HRSYNC_SESSION_DSN", ""),
		LoginEmail:          getEnv("HRSYNC_LOGIN_EMAIL", ""),
		LoginPassword:       getEnv("HRSYNC_LOGIN_PASSWORD", ""),
		DefaultPageLimit:    getEnvInt("HRSYNC_DEFAULT_PAGE_LIMIT", 10),
		Environment:         getEnv("HRSYNC_ENV", "development"),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("HRSYNC_API_BASE_URL is required")
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("HRSYNC_REQUESTS_PER_SECOND must be positive")
	}
	if c.PendingPollInterval <= 0 {
		return fmt.Errorf("HRSYNC_PENDING_POLL_INTERVAL must be positive")
	}
	if c.SessionFile != "" && strings.TrimSpace(c.SessionPassphrase) == "" && c.Environment == "production" {
		return fmt.Errorf("HRSYNC_SESSION_PASSPHRASE must be set when persisting sessions to disk in production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
