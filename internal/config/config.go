package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	DB struct {
		DSN string
	}
	Generation struct {
		IntervalMinutes int
		WarmupSeconds   int
	}
	Kafka struct {
		Broker string
		Topic  string
	}
	Redis struct {
		Addr string
	}
	API struct {
		Port     string
		BasePath string
	}
	Logging struct {
		Dir   string
		Level string
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// Database DSN
	cfg.DB.DSN = os.Getenv("DB_DSN")

	// Generation schedule
	if m, err := strconv.Atoi(os.Getenv("GENERATION_INTERVAL_MINUTES")); err == nil {
		cfg.Generation.IntervalMinutes = m
	}
	if s, err := strconv.Atoi(os.Getenv("GENERATION_WARMUP_SECONDS")); err == nil {
		cfg.Generation.WarmupSeconds = s
	}

	// Optional integrations
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")

	// API settings
	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	// Logging
	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	// Validate required settings
	missing := []string{}
	if cfg.DB.DSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configurations: %v", missing)
	}
	if cfg.Generation.IntervalMinutes < 0 {
		return Config{}, fmt.Errorf("GENERATION_INTERVAL_MINUTES must be positive")
	}

	// Apply defaults
	if cfg.Generation.IntervalMinutes == 0 {
		cfg.Generation.IntervalMinutes = 60
	}
	if cfg.Generation.WarmupSeconds == 0 {
		cfg.Generation.WarmupSeconds = 30
	}
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v1"
	}
	if cfg.Kafka.Broker != "" && cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "alert.created"
	}

	return cfg, nil
}
