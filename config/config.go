package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port             string
	DatabaseURL      string
	JWTSecret        string
	JWTIssuer        string
	JWTExpiryMinutes int
	AdminUsername    string
	UseInMemoryStore bool
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	expiry, err := strconv.Atoi(getEnvOrDefault("JWT_EXPIRY_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_MINUTES: %w", err)
	}

	useInMemory, err := strconv.ParseBool(getEnvOrDefault("USE_IN_MEMORY_STORE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid USE_IN_MEMORY_STORE: %w", err)
	}

	cfg := &Config{
		Port:             os.Getenv("PORT"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTIssuer:        getEnvOrDefault("JWT_ISSUER", "invoice-api"),
		JWTExpiryMinutes: expiry,
		AdminUsername:    getEnvOrDefault("ADMIN_USERNAME", "admin"),
		UseInMemoryStore: useInMemory,
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if !cfg.UseInMemoryStore && cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required when USE_IN_MEMORY_STORE is false")
	}

	return cfg, nil
}

// TokenExpiry returns the validity window of issued tokens.
func (c *Config) TokenExpiry() time.Duration {
	return time.Duration(c.JWTExpiryMinutes) * time.Minute
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	// Schema and routines are owned by scripts/postgres_functions.sql; no
	// migration runs here.
	return db, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
