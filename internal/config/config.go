package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read once at startup
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	Explore  ExploreConfig
	Composer ComposerConfig
}

// DatabaseConfig locates the property store.
// URL wins over the individual connection fields when set.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxOpen  int
	MaxIdle  int
}

// HTTPConfig configures the API listener
type HTTPConfig struct {
	Host           string
	Port           int
	GinMode        string
	AllowedOrigins []string
}

// ExploreConfig tunes the property list screen
type ExploreConfig struct {
	Limit            int
	SearchDebounce   time.Duration
	FetchTimeout     time.Duration
	SkipInitialFetch bool
}

// ComposerConfig bounds the open filter composers
type ComposerConfig struct {
	MaxOpen int
	IdleTTL time.Duration
}

// Load reads configuration from the environment, after an optional .env file
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("📄 Loaded .env")
	}

	cfg := &Config{
		Database: DatabaseConfig{
			URL:      firstEnv("DATABASE_URL", "PG_DSN"),
			Host:     envString("PG_HOST", "localhost"),
			Port:     envParsed("PG_PORT", 5432, strconv.Atoi),
			User:     envString("PG_USER", "postgres"),
			Password: envString("PG_PASSWORD", ""),
			Name:     envString("PG_DATABASE", "restate"),
			SSLMode:  envString("PG_SSLMODE", "disable"),
			MaxOpen:  envParsed("PG_MAX_CONNECTIONS", 25, strconv.Atoi),
			MaxIdle:  envParsed("PG_MAX_IDLE_CONNECTIONS", 5, strconv.Atoi),
		},
		HTTP: HTTPConfig{
			Host:           envString("SERVER_HOST", "0.0.0.0"),
			Port:           envParsed("SERVER_PORT", 8080, strconv.Atoi),
			GinMode:        envString("GIN_MODE", "release"),
			AllowedOrigins: splitList(envString("CORS_ALLOWED_ORIGINS", "*")),
		},
		Explore: ExploreConfig{
			Limit:            envParsed("LISTING_DEFAULT_LIMIT", 20, strconv.Atoi),
			SearchDebounce:   envParsed("LISTING_SEARCH_DEBOUNCE", 500*time.Millisecond, time.ParseDuration),
			FetchTimeout:     envParsed("LISTING_FETCH_TIMEOUT", 10*time.Second, time.ParseDuration),
			SkipInitialFetch: envParsed("LISTING_SKIP_INITIAL_FETCH", false, strconv.ParseBool),
		},
		Composer: ComposerConfig{
			MaxOpen: envParsed("COMPOSER_MAX_OPEN", 100, strconv.Atoi),
			IdleTTL: envParsed("COMPOSER_IDLE_TTL", 30*time.Minute, time.ParseDuration),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Explore.Limit <= 0 {
		errs = append(errs, fmt.Errorf("LISTING_DEFAULT_LIMIT must be positive, got %d", c.Explore.Limit))
	}
	if c.Explore.SearchDebounce < 0 {
		errs = append(errs, fmt.Errorf("LISTING_SEARCH_DEBOUNCE must not be negative, got %s", c.Explore.SearchDebounce))
	}
	if c.Explore.FetchTimeout < 0 {
		errs = append(errs, fmt.Errorf("LISTING_FETCH_TIMEOUT must not be negative, got %s", c.Explore.FetchTimeout))
	}
	if c.Composer.MaxOpen < 0 {
		errs = append(errs, fmt.Errorf("COMPOSER_MAX_OPEN must not be negative, got %d", c.Composer.MaxOpen))
	}
	return errors.Join(errs...)
}

// DSN returns the connection string for lib/pq
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Addr returns the listen address
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// envParsed parses key with parse, keeping fallback when unset or malformed
func envParsed[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		log.Printf("⚠️  Ignoring invalid %s=%q, using %v", key, raw, fallback)
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
