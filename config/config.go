package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends understood by Load.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	StorageBackend string
	DataDir        string
	PrefsPath      string
	SQLitePath     string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	Debug bool

	MaxConcurrency  int
	RateLimitMs     int
	MaxRetries      int
	PagesToImport   int
	ListingsPerPage int
	ChromeBin       string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	dataDir := getEnv("DATA_DIR", "./data")

	return &Config{
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendJSON)),
		DataDir:        dataDir,
		PrefsPath:      getEnv("PREFS_PATH", filepath.Join(dataDir, "preferences.yaml")),
		SQLitePath:     getEnv("SQLITE_PATH", filepath.Join(dataDir, "propbook.db")),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "propbook"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "propbook"),
		PostgresDB:       getEnv("POSTGRES_DB", "propbook"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		Debug: getEnvBool("DEBUG", false),

		MaxConcurrency:  getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:     getEnvInt("RATE_LIMIT_MS", 2000),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		PagesToImport:   getEnvInt("PAGES_TO_IMPORT", 1),
		ListingsPerPage: getEnvInt("LISTINGS_PER_PAGE", 10),
		ChromeBin:       getEnv("CHROME_BIN", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
