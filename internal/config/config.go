package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Upstream AI answering service
	AIServiceURL           string
	AIStreamTimeoutSeconds int

	// Chat limits
	MaxQueryLength int

	// Frontend
	FrontendURL string

	// Logging
	LogLevel string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                   getEnvOrDefault("PORT", "8080"),
		Env:                    getEnvOrDefault("ENV", "development"),
		DatabaseURL:            mustGetEnv("DATABASE_URL"),
		RedisURL:               mustGetEnv("REDIS_URL"),
		JWTSecret:              mustGetEnv("JWT_SECRET"),
		AIServiceURL:           mustGetEnv("AI_SERVICE_URL"),
		AIStreamTimeoutSeconds: getEnvAsIntOrDefault("AI_STREAM_TIMEOUT_SECONDS", 300),
		MaxQueryLength:         getEnvAsIntOrDefault("MAX_QUERY_LENGTH", 2000),
		FrontendURL:            getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
