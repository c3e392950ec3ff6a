// Package config loads and validates application configuration from
// environment variables, optionally seeded from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/travel-calendar/internal/middleware"
)

// Storage backends accepted in STORAGE_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all configuration values for the server and the CLI.
// Values are populated by Load; environment variables win over the file.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `yaml:"port"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Empty by default: the HTML planner is same-origin.
	// Set CORS_ORIGINS to a comma-separated list to enable CORS.
	CORSOrigins []string `yaml:"cors_origins"`

	// StorageBackend selects where the travel collection lives:
	// file (default), memory or postgres.
	StorageBackend string `yaml:"storage_backend"`

	// DataDir is the directory of the file backend. Defaults to "data".
	DataDir string `yaml:"data_dir"`

	// DatabaseURL is the Postgres connection string. Required for the postgres backend.
	DatabaseURL string `yaml:"database_url"`

	// StorageKey names the stored collection. Defaults to "travelCalendar".
	StorageKey string `yaml:"storage_key"`

	// CalendarBaseURL is the Google Calendar event-template endpoint.
	CalendarBaseURL string `yaml:"calendar_base_url"`

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// AuthUser and AuthHash enable Basic Auth on mutating routes when both
	// are set. AuthHash is an Argon2id hash from `travelcal hash-password`.
	AuthUser string `yaml:"auth_user"`
	AuthHash string `yaml:"auth_hash"`
}

// Load reads configuration and returns a Config. If CONFIG_FILE is set the
// YAML file it names is read first, then environment variables override it.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	var cfg Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config.Load: parse %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", orDefault(cfg.Port, "8080"))
	cfg.LogLevel = getEnv("LOG_LEVEL", orDefault(cfg.LogLevel, "info"))
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	cfg.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", orDefault(cfg.StorageBackend, BackendFile)))
	cfg.DataDir = getEnv("DATA_DIR", orDefault(cfg.DataDir, "data"))
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.StorageKey = getEnv("STORAGE_KEY", orDefault(cfg.StorageKey, "travelCalendar"))
	cfg.CalendarBaseURL = getEnv("CALENDAR_BASE_URL", orDefault(cfg.CalendarBaseURL, "https://www.google.com/calendar/render"))
	cfg.AuthUser = getEnv("AUTH_USER", cfg.AuthUser)
	cfg.AuthHash = getEnv("AUTH_HASH", cfg.AuthHash)

	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("MAX_BODY_BYTES must be an integer: %q", v)
		}
		cfg.MaxBodyBytes = n
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error

	switch c.StorageBackend {
	case BackendFile, BackendMemory, BackendPostgres:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be one of file, memory, postgres: %q", c.StorageBackend))
	}

	var missing []string
	if c.StorageBackend == BackendPostgres && c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if (c.AuthUser == "") != (c.AuthHash == "") {
		missing = append(missing, "AUTH_USER and AUTH_HASH (set both or neither)")
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", ")))
	}
	if c.AuthHash != "" {
		if err := middleware.CheckHash(c.AuthHash); err != nil {
			errs = append(errs, fmt.Errorf("AUTH_HASH: %w", err))
		}
	}

	return errors.Join(errs...)
}

// AuthEnabled reports whether Basic Auth credentials are configured.
func (c Config) AuthEnabled() bool {
	return c.AuthUser != "" && c.AuthHash != ""
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
