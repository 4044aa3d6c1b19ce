package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken        string         `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN                string         `mapstructure:"DB_DSN"`
	APIBaseURL           string         `mapstructure:"API_BASE_URL"`
	Environment          string         `mapstructure:"ENV"`
	Location             *time.Location `mapstructure:"TIMEZONE"`
	APITimeout           time.Duration  `mapstructure:"API_TIMEOUT"`
	MigrationsPath       string         `mapstructure:"MIGRATIONS_PATH"`
	SessionSweepInterval time.Duration  `mapstructure:"SESSION_SWEEP_INTERVAL"`
	LogLevel             string         `mapstructure:"LOG_LEVEL"`
	Tracing              Tracing
}

// Tracing configures the OTLP exporter for spans around backend calls.
type Tracing struct {
	Enabled     bool    `mapstructure:"OTEL_ENABLED"`
	Endpoint    string  `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SampleRatio float64 `mapstructure:"OTEL_SAMPLING_RATIO"`
}

const (
	defaultEnvironment   = "development"
	defaultTimezone      = "Europe/Stockholm"
	defaultAPITimeout    = 10 * time.Second
	defaultMigrations    = "migrations"
	defaultSweepInterval = time.Hour
	defaultOTLPEndpoint  = "localhost:4317"
)

func Load() (*Config, error) {
	// .env is optional; plain environment variables win either way
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function so tests can feed a map.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken:  getenv("TELEGRAM_TOKEN"),
		DBDSN:          getenv("DB_DSN"),
		APIBaseURL:     strings.TrimRight(getenv("API_BASE_URL"), "/"),
		Environment:    getenv("ENV"),
		MigrationsPath: getenv("MIGRATIONS_PATH"),
		LogLevel:       strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL"))),
	}

	if cfg.Environment == "" {
		cfg.Environment = defaultEnvironment
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = defaultMigrations
	}

	var err error
	if cfg.Location, err = location(getenv("TIMEZONE"), defaultTimezone); err != nil {
		return nil, err
	}
	if cfg.APITimeout, err = duration("API_TIMEOUT", getenv("API_TIMEOUT"), defaultAPITimeout); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = duration("SESSION_SWEEP_INTERVAL", getenv("SESSION_SWEEP_INTERVAL"), defaultSweepInterval); err != nil {
		return nil, err
	}

	if cfg.Tracing, err = tracing(getenv); err != nil {
		return nil, err
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required but not set")
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func duration(key, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration (got %q)", key, raw)
	}
	return d, nil
}

func location(raw, fallback string) (*time.Location, error) {
	if raw == "" {
		raw = fallback
	}
	loc, err := time.LoadLocation(raw)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", raw, err)
	}
	return loc, nil
}

func tracing(getenv func(string) string) (Tracing, error) {
	t := Tracing{
		Endpoint:    strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		SampleRatio: 1,
	}
	if t.Endpoint == "" {
		t.Endpoint = defaultOTLPEndpoint
	}
	switch v := strings.TrimSpace(getenv("OTEL_ENABLED")); v {
	case "", "false", "0":
	case "true", "1":
		t.Enabled = true
	default:
		return t, fmt.Errorf("OTEL_ENABLED must be true or false (got %q)", v)
	}
	if v := strings.TrimSpace(getenv("OTEL_SAMPLING_RATIO")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return t, fmt.Errorf("OTEL_SAMPLING_RATIO must be between 0 and 1 (got %q)", v)
		}
		t.SampleRatio = f
	}
	return t, nil
}
