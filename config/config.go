package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	DBDriver    string
	DBDSN       string
	JWTSecret   string
	JWTTTLHours int
	LogLevel    string
}

// Load reads .env if present, then environment variables with defaults.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBDSN:       getEnv("DB_DSN", "catering.db"),
		JWTSecret:   getEnv("JWT_SECRET", "catering_kita_super_secret_2024"),
		JWTTTLHours: getEnvAsInt("JWT_TTL_HOURS", 24),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
