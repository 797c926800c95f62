// Package config loads server settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string

	TokenSecret string
	TokenTTL    time.Duration

	ResendAPIKey string
	FromEmail    string
	AppBaseURL   string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
}

// Load reads the configuration. A missing .env file is fine; missing
// required variables are not.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		TokenSecret:        os.Getenv("TOKEN_SECRET"),
		TokenTTL:           getDuration("TOKEN_TTL", 24*time.Hour),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		FromEmail:          getEnv("SMTP_FROM_EMAIL", "Flowly <onboarding@resend.dev>"),
		AppBaseURL:         getEnv("APP_BASE_URL", "http://localhost:8080"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
