package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "PG_DSN", "LISTING_DEFAULT_LIMIT", "LISTING_SEARCH_DEBOUNCE", "LISTING_SKIP_INITIAL_FETCH", "CORS_ALLOWED_ORIGINS", "COMPOSER_MAX_OPEN", "COMPOSER_IDLE_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Explore.SearchDebounce != 500*time.Millisecond {
		t.Errorf("SearchDebounce = %s, want 500ms", cfg.Explore.SearchDebounce)
	}
	if cfg.Explore.Limit != 20 {
		t.Errorf("Limit = %d, want 20", cfg.Explore.Limit)
	}
	if cfg.Explore.SkipInitialFetch {
		t.Error("Expected initial fetch to be enabled by default")
	}
	if cfg.Composer.MaxOpen != 100 || cfg.Composer.IdleTTL != 30*time.Minute {
		t.Errorf("Composer = %+v, want 100 open, 30m idle", cfg.Composer)
	}
	if len(cfg.HTTP.AllowedOrigins) != 1 || cfg.HTTP.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.HTTP.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LISTING_SEARCH_DEBOUNCE", "250ms")
	t.Setenv("LISTING_SKIP_INITIAL_FETCH", "true")
	t.Setenv("PG_PORT", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:8081, https://app.example.com,")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Explore.SearchDebounce != 250*time.Millisecond {
		t.Errorf("SearchDebounce = %s, want 250ms", cfg.Explore.SearchDebounce)
	}
	if !cfg.Explore.SkipInitialFetch {
		t.Error("Expected SkipInitialFetch to be true")
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Invalid PG_PORT should fall back to 5432, got %d", cfg.Database.Port)
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 || cfg.HTTP.AllowedOrigins[1] != "https://app.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.HTTP.AllowedOrigins)
	}
	if got := cfg.HTTP.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string]string{
		"LISTING_DEFAULT_LIMIT":   "0",
		"LISTING_SEARCH_DEBOUNCE": "-1s",
		"LISTING_FETCH_TIMEOUT":   "-5s",
		"COMPOSER_MAX_OPEN":       "-1",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", key, value)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "restate", SSLMode: "disable"}
	want := "host=db port=5433 user=u password=p dbname=restate sslmode=disable"
	if got := db.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	db.URL = "postgres://x"
	if got := db.DSN(); got != "postgres://x" {
		t.Errorf("URL should take precedence, got %q", got)
	}
}
