package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"ceylontours/internal/cache"
	"ceylontours/internal/database"
	"ceylontours/internal/messaging"
)

// Config holds the application configuration.
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// HMAC secret shared with the identity provider.
	JWTSecret string

	Database      database.Config
	NATS          messaging.Config
	Elasticsearch ElasticsearchConfig
	Cache         cache.Config
}

// Load reads configuration from the environment. A .env file is honored
// when present so local runs match the deployed setup.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		JWTSecret: getEnv("JWT_SECRET", "dev-secret"),

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "ceylontours"),
			Password:           getEnv("DB_PASSWORD", "ceylontours123"),
			DBName:             getEnv("DB_NAME", "ceylontours"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "ceylontours"),
			ClientID:  getEnv("NATS_CLIENT_ID", "ceylontours-api"),
		},

		Elasticsearch: LoadElasticsearchConfig(),

		Cache: cache.Config{
			Addr:     getEnv("CACHE_ADDR", "localhost:6379"),
			Password: os.Getenv("CACHE_PASSWORD"),
			TTL:      time.Duration(getEnvInt("CACHE_TTL_SEC", 60)) * time.Second,
		},
	}
}

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer environment value or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
