package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Advisor  AdvisorConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	ServiceName        string
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

type AdvisorConfig struct {
	RateLimitRequests   int
	RateLimitWindow     time.Duration
	CatalogCacheTTL     time.Duration
	RecommendationTopic string // in-process topic feeding the recommendation log
	LogMaxAttempts      int
	LogRetryDelay       time.Duration
	EventSubjectPrefix  string
	DefaultLocale       string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ServiceName:        getEnv("OTEL_SERVICE_NAME", "scent-advisor-backend"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Advisor: AdvisorConfig{
			RateLimitRequests:   getEnvAsInt("CHAT_RATE_LIMIT_REQUESTS", 30),
			RateLimitWindow:     getEnvAsDuration("CHAT_RATE_LIMIT_WINDOW", time.Minute),
			CatalogCacheTTL:     getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
			RecommendationTopic: getEnv("RECOMMENDATION_LOG_TOPIC", "RECOMMENDATION_LOG"),
			LogMaxAttempts:      getEnvAsInt("RECOMMENDATION_LOG_MAX_ATTEMPTS", 3),
			LogRetryDelay:       getEnvAsDuration("RECOMMENDATION_LOG_RETRY_DELAY", 500*time.Millisecond),
			EventSubjectPrefix:  getEnv("EVENT_SUBJECT_PREFIX", "advisor"),
			DefaultLocale:       getEnv("CHAT_DEFAULT_LOCALE", "fr-FR"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil && value > 0 {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
