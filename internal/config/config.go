package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerAddress = ":8080"
	defaultBaseURL       = "http://localhost:8080"
	defaultDatabaseDSN   = "host=127.0.0.1 user=postgres password=postgres dbname=urlshortener port=5432 sslmode=disable TimeZone=UTC"

	defaultJWTExpiry = 24 * time.Hour

	defaultCreateTimeout = 5 * time.Second
	defaultUpdateTimeout = 3 * time.Second
	defaultFindTimeout   = 3 * time.Second
	defaultClickTimeout  = 2 * time.Second

	defaultClickQueueSize = 256
	defaultClickWorkers   = 4
)

type Config struct {
	ServerAddress string
	BaseURL       string
	DatabaseDSN   string

	JWTSecret string
	JWTExpiry time.Duration

	// Per-operation persistence budgets.
	CreateTimeout time.Duration
	UpdateTimeout time.Duration
	FindTimeout   time.Duration
	ClickTimeout  time.Duration

	ClickQueueSize int
	ClickWorkers   int
}

// Load reads configuration from the environment, with a .env file as an
// optional source. A missing JWT secret is a startup error, not something
// to discover one request at a time.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress:  getEnv("SERVER_ADDRESS", defaultServerAddress),
		BaseURL:        getEnv("BASE_URL", defaultBaseURL),
		DatabaseDSN:    getEnv("DATABASE_DSN", defaultDatabaseDSN),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiry:      getEnvDuration("JWT_EXPIRY", defaultJWTExpiry),
		CreateTimeout:  getEnvDuration("DB_CREATE_TIMEOUT", defaultCreateTimeout),
		UpdateTimeout:  getEnvDuration("DB_UPDATE_TIMEOUT", defaultUpdateTimeout),
		FindTimeout:    getEnvDuration("DB_FIND_TIMEOUT", defaultFindTimeout),
		ClickTimeout:   getEnvDuration("DB_CLICK_TIMEOUT", defaultClickTimeout),
		ClickQueueSize: getEnvInt("CLICK_QUEUE_SIZE", defaultClickQueueSize),
		ClickWorkers:   getEnvInt("CLICK_WORKERS", defaultClickWorkers),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
