package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment variables for the service.
type Config struct {
	Env       string // "development" or "production"
	Port      string // HTTP port (default: 8080)
	MongoURI  string // MongoDB connection string
	MongoDB   string // MongoDB database name
	RedisURL  string // Redis connection URL
	JWTSecret string // JWT signing secret
	S3Bucket  string // S3 bucket for uploads; empty disables presigning
	S3BaseURL string // Public base URL for uploaded files
}

// LoadConfig reads .env when present, then the environment, and validates
// required fields.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:       os.Getenv("APP_ENV"),
		Port:      os.Getenv("PORT"),
		MongoURI:  os.Getenv("MONGO_URI"),
		MongoDB:   os.Getenv("MONGO_DB"),
		RedisURL:  os.Getenv("REDIS_URL"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		S3Bucket:  os.Getenv("S3_BUCKET"),
		S3BaseURL: os.Getenv("S3_BASE_URL"),
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "smartlink"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379"
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
