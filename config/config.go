package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Stripe    StripeConfig
	Storage   StorageConfig
	Publish   PublishConfig
	Assistant AssistantConfig
	App       AppConfig
}

type ServerConfig struct {
	Port         string
	AllowOrigins []string
}

type DatabaseConfig struct {
	DSN      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
}

// StripeConfig keys are validated on first use, not at startup:
// a deploy without billing enabled should still boot.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceID       string
}

type StorageConfig struct {
	Bucket    string
	Endpoint  string
	Region    string
	PublicURL string
}

type PublishConfig struct {
	Domain string
}

type AssistantConfig struct {
	BaseURL string
}

type AppConfig struct {
	Environment string
	BaseURL     string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			AllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			PriceID:       getEnv("STRIPE_PRICE_ID", ""),
		},
		Storage: StorageConfig{
			Bucket:    getEnv("STORAGE_BUCKET", "displan-assets"),
			Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
			Region:    getEnv("STORAGE_REGION", "us-east-1"),
			PublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
		},
		Publish: PublishConfig{
			Domain: getEnv("PUBLISH_DOMAIN", "displan.design"),
		},
		Assistant: AssistantConfig{
			BaseURL: getEnv("ASSISTANT_BASE_URL", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			BaseURL:     getEnv("APP_BASE_URL", "http://localhost:3000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
