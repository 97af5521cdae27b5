package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Environment string

	// Calendar artifact configuration
	CalendarProductID string
	CalendarDomain    string

	// Upload configuration
	MaxImageUploadSize int64

	// Cache configuration
	CacheEnabled bool
	RedisURL     string
	ViewCacheTTL time.Duration

	// Login throttle configuration
	LoginMaxAttempts int
	LoginWindow      time.Duration

	// Monitoring
	EnableMetrics   bool
	MetricsInterval time.Duration
}

func LoadConfig() *Config {
	// Optional local overrides; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Skipping .env file: %v", err)
	}

	return &Config{
		// Server
		Environment: getEnv("ENVIRONMENT", "development"),

		// Calendar
		CalendarProductID: getEnv("CALENDAR_PRODUCT_ID", "-//OrienteO117//App//EN"),
		CalendarDomain:    getEnv("CALENDAR_DOMAIN", "orienteo117.app"),

		// Uploads
		MaxImageUploadSize: getEnvAsInt64("MAX_IMAGE_UPLOAD_SIZE", 5*1024*1024),

		// Cache
		CacheEnabled: getEnvAsBool("CACHE_ENABLED", false),
		RedisURL:     getEnv("REDIS_URL", "localhost:6379"),
		ViewCacheTTL: getEnvAsDuration("VIEW_CACHE_TTL", "30s"),

		// Login throttle
		LoginMaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 10),
		LoginWindow:      getEnvAsDuration("LOGIN_WINDOW", "5m"),

		// Monitoring
		EnableMetrics:   getEnvAsBool("ENABLE_METRICS", true),
		MetricsInterval: getEnvAsDuration("METRICS_INTERVAL", "30s"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
