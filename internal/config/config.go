package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ksen61/kursovaya4petshop2/internal/repository"
)

// Config carries everything the binaries read from the environment. A .env
// file is loaded when present; real environment variables win over it.
type Config struct {
	HTTPPort        string
	Database        repository.Credentials
	CheckoutTimeout time.Duration
	LogLevel        zerolog.Level
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(getEnv("CHECKOUT_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPPort: getEnv("PORT", "8080"),
		Database: repository.Credentials{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              dbPort,
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", "postgres"),
			DBName:            getEnv("DB_NAME", "petshop"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MigrationsDirPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		CheckoutTimeout: timeout,
		LogLevel:        level,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
