package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string // default: 8080

	// Database
	PostgresDSN string

	// Cache
	RedisAddr string

	// Settings
	SettingsNamespace string        // default: "ai_seo_settings"
	SettingsCacheTTL  time.Duration // default: 10m

	// Reporting
	CurrencySuffix string // default: "USD"

	// Observability
	OTELExporterType     string // "stdout" or "otlp"
	OTELExporterEndpoint string // default: "localhost:4317"

	// Rate Limiting
	AdminRateLimitRPM int64 // requests per minute per admin token, default: 120
}

func Load() (*Config, error) {
	// Load .env file if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		PostgresDSN:          os.Getenv("POSTGRES_DSN"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		SettingsNamespace:    getEnv("SETTINGS_NAMESPACE", "ai_seo_settings"),
		CurrencySuffix:       getEnv("CURRENCY_SUFFIX", "USD"),
		OTELExporterType:     getEnv("OTEL_EXPORTER_TYPE", "stdout"),
		OTELExporterEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", "localhost:4317"),
	}

	ttl, err := time.ParseDuration(getEnv("SETTINGS_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SETTINGS_CACHE_TTL: %w", err)
	}
	cfg.SettingsCacheTTL = ttl

	rpm, err := strconv.ParseInt(getEnv("ADMIN_RATE_LIMIT_RPM", "120"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_RATE_LIMIT_RPM: %w", err)
	}
	cfg.AdminRateLimitRPM = rpm

	// Validation
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is required")
	}
	if cfg.SettingsNamespace == "" {
		return nil, fmt.Errorf("SETTINGS_NAMESPACE must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
