package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
	}

	ttlMinutes, err := strconv.Atoi(getEnv("JWT_TTL_MINUTES", "480"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_MINUTES: %w", err)
	}
	cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
