package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	LogLevel string

	Headless       bool
	UserAgent      string
	AcceptLanguage string

	PageLoadTimeout time.Duration
	ActionTimeout   time.Duration

	MaxAttempts int

	MetricsAddr string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Headless:        getEnvAsBool("HEADLESS", true),
		UserAgent:       getEnv("USER_AGENT", `Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36`),
		AcceptLanguage:  getEnv("ACCEPT_LANGUAGE", "en-US,en;q=0.9"),
		PageLoadTimeout: getEnvAsDuration("PAGE_LOAD_TIMEOUT_SECONDS", 60) * time.Second,
		ActionTimeout:   getEnvAsDuration("ACTION_TIMEOUT_SECONDS", 10) * time.Second,
		MaxAttempts:     getEnvAsInt("MAX_ATTEMPTS", 5),
		MetricsAddr:     getEnv("METRICS_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback))
}
