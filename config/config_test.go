package config

import (
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("PREFS_PATH", "")

	cfg := FromEnv()
	if cfg.StorageBackend != BackendJSON {
		t.Errorf("StorageBackend: got %q, want %q", cfg.StorageBackend, BackendJSON)
	}
	if want := filepath.Join("./data", "preferences.yaml"); cfg.PrefsPath != want {
		t.Errorf("PrefsPath: got %q, want %q", cfg.PrefsPath, want)
	}
	if cfg.MaxConcurrency != 3 {
		t.Errorf("MaxConcurrency: got %d, want 3", cfg.MaxConcurrency)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "SQLite")
	t.Setenv("DATA_DIR", "/tmp/pb")
	t.Setenv("DEBUG", "true")
	t.Setenv("RATE_LIMIT_MS", "not-a-number")
	t.Setenv("LISTINGS_PER_PAGE", "25")

	cfg := FromEnv()
	if cfg.StorageBackend != BackendSQLite {
		t.Errorf("StorageBackend: got %q, want %q", cfg.StorageBackend, BackendSQLite)
	}
	if want := filepath.Join("/tmp/pb", "propbook.db"); cfg.SQLitePath != want {
		t.Errorf("SQLitePath: got %q, want %q", cfg.SQLitePath, want)
	}
	if !cfg.Debug {
		t.Error("Debug: got false, want true")
	}
	if cfg.RateLimitMs != 2000 {
		t.Errorf("RateLimitMs: got %d, want fallback 2000", cfg.RateLimitMs)
	}
	if cfg.ListingsPerPage != 25 {
		t.Errorf("ListingsPerPage: got %d, want 25", cfg.ListingsPerPage)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5433", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "books", PostgresSSLMode: "require",
	}
	want := "host=db port=5433 user=u password=p dbname=books sslmode=require"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
}
