package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// database config
	DB_HOST              string        `validate:"required"`
	DB_PORT              int           `validate:"min=1,max=65535"`
	DB_USER              string        `validate:"required"`
	DB_PASSWORD          string
	DB_NAME              string        `validate:"required"`
	DB_SSL_MODE          string        `validate:"oneof=disable require verify-ca verify-full"`
	DB_CONN_MAX_LIFETIME time.Duration `validate:"min=0"`
	DB_MAX_IDLE_CONNS    int           `validate:"min=0"`
	DB_MAX_OPEN_CONNS    int           `validate:"min=1"`
	// server config
	APP_PORT      string `validate:"required,numeric"`
	SEED_ON_START bool
	// logger config
	LOG_LEVEL     string `validate:"oneof=trace debug info warn error"`
	LOG_FILE_PATH string
}

// LoadEnvConfig reads an optional .env file, then the process environment,
// and validates the result. A missing .env file is not an error.
func LoadEnvConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg := &envConfig{
		DB_HOST:              getEnvString("DB_HOST", "localhost"),
		DB_PORT:              getEnvInt("DB_PORT", 5432),
		DB_USER:              getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:          getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:              getEnvString("DB_NAME", "academic_records"),
		DB_SSL_MODE:          getEnvString("DB_SSL_MODE", "disable"),
		DB_CONN_MAX_LIFETIME: getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
		APP_PORT:             getEnvString("APP_PORT", getEnvString("PORT", "3000")),
		SEED_ON_START:        getEnvBool("SEED_ON_START", false),
		LOG_LEVEL:            getEnvString("LOG_LEVEL", "info"),
		LOG_FILE_PATH:        getEnvString("LOG_FILE_PATH", ""),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid environment config: %w", err)
	}

	DefaultEnvConfig = cfg
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
