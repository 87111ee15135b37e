package config

import (
	"os"
	"strconv"
	"time"

	"timesheet/models"
)

type Config struct {
	DatabaseURL   string
	JWTSecret     string
	JWTExpiration time.Duration
	ServerPort    string

	SMTPUser     string
	SMTPPassword string
	SMTPHost     string
	SMTPPort     string
	SMTPTLS      bool
	FromEmail    string

	DefaultHourlyRate float64
	FallbackEmail     string
}

func Load() *Config {
	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/timesheet"),
		JWTSecret:     getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration: 24 * time.Hour,
		ServerPort:    getEnv("SERVER_PORT", "8080"),

		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPTLS:      getEnv("SMTP_TLS", "false") == "true",
		FromEmail:    getEnv("FROM_EMAIL", "timesheet@company.com"),

		DefaultHourlyRate: getEnvFloat("DEFAULT_HOURLY_RATE", models.DefaultHourlyRate),
		FallbackEmail:     getEnv("FALLBACK_NOTIFY_EMAIL", "test@example.com"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
