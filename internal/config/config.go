package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DatabaseURL    string
	MigrateOnStart bool
	MigrateVersion uint
	MigrateForce   int

	RedisURL     string
	UserCacheTTL time.Duration

	JWTSecret string

	CORSOrigins string

	EventBus           string
	KafkaBrokers       []string
	KafkaTopic         string
	KafkaConsumerGroup string
	KafkaRetryInitial  time.Duration
	KafkaRetryMax      time.Duration

	FCMEnabled         bool
	FCMCredentialsFile string
	FCMProjectID       string

	MatchThreshold float64
	MatchWorkers   int

	LocalePath string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getBoolEnv("MIGRATE_ON_START", true),
		MigrateVersion: uint(getIntEnv("MIGRATE_VERSION", 0)),
		MigrateForce:   getIntEnv("MIGRATE_FORCE", 0),

		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		UserCacheTTL: getDurationEnv("USER_CACHE_TTL", time.Minute),

		JWTSecret: getEnv("JWT_SECRET", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		EventBus:           getEnv("EVENT_BUS", "memory"),
		KafkaBrokers:       getListEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "lost-found.events"),
		KafkaConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "lost-found-triggers"),
		KafkaRetryInitial:  getDurationEnv("KAFKA_RETRY_INITIAL", 500*time.Millisecond),
		KafkaRetryMax:      getDurationEnv("KAFKA_RETRY_MAX", 30*time.Second),

		FCMEnabled:         getBoolEnv("FCM_ENABLED", false),
		FCMCredentialsFile: getEnv("FCM_CREDENTIALS_FILE", ""),
		FCMProjectID:       getEnv("FCM_PROJECT_ID", ""),

		MatchThreshold: getFloatEnv("MATCH_THRESHOLD", 0.4),
		MatchWorkers:   getIntEnv("MATCH_WORKERS", 8),

		LocalePath: getEnv("LOCALE_PATH", ""),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated value, dropping empty items.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
