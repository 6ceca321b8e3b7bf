package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Addr               string
	Environment        string
	LogLevel           string
	JWTSecret          string
	SessionTTL         time.Duration
	DemoSeed           int64
	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		Environment:        getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		JWTSecret:          getEnv("JWT_SECRET", "demo-appraisal-secret"),
		SessionTTL:         getEnvDuration("SESSION_TTL", 8*time.Hour),
		DemoSeed:           getEnvInt64("DEMO_SEED", 0),
		MaxBodyBytes:       getEnvInt64("MAX_BODY_BYTES", 1048576),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
	}
}

// NewLogger builds the root zerolog logger for the process. Development
// environments get console output instead of raw JSON.
func NewLogger(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Environment == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Str("service", "appraisal").Logger()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
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

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
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

func (c Config) Validate() error {
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "demo-appraisal-secret" {
		return fmt.Errorf("JWT_SECRET must be changed in production")
	}
	return nil
}
