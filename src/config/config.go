package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	AppEnv             string
	DatabaseURL        string
	JWTSecret          string
	SessionTTL         time.Duration
	DemoMode           bool
	AllowedOrigins     []string
	KafkaBrokers       []string
	KafkaTransferTopic string
	CacheTTL           time.Duration
	SeedFile           string
	LogLevel           string
}

// developmentSecret signs sessions when APP_ENV=development and no
// JWT_SECRET is set.
const developmentSecret = "bankweb-development-secret"

func Load() (Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		AppEnv:             getEnv("APP_ENV", "production"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AllowedOrigins:     getEnvAsList("ALLOWED_ORIGINS", nil),
		KafkaBrokers:       getEnvAsList("KAFKA_BROKER_URL", nil),
		KafkaTransferTopic: getEnv("KAFKA_TRANSFER_TOPIC", "transfer_requests"),
		SeedFile:           getEnv("SEED_FILE", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.SessionTTL, err = getEnvAsDuration("SESSION_TTL", 168*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.DemoMode, err = getEnvAsBool("DEMO_MODE", false); err != nil {
		return Config{}, err
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv != "development" {
			return Config{}, errors.New("JWT_SECRET is required")
		}
		cfg.JWTSecret = developmentSecret
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("SESSION_TTL must be positive")
	}

	return cfg, nil
}

// SecureCookies reports whether cookies must be restricted to HTTPS. Only
// development serves plain HTTP.
func (c Config) SecureCookies() bool {
	return c.AppEnv != "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getEnvAsList splits a comma separated value, dropping empty entries.
func getEnvAsList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
