// Package config handles loading and validating runtime configuration for StatTeam.
// Values are read from environment variables (optionally seeded from a .env file) so the
// same binary can point at a different base directory, store, or listen address without
// code changes.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// env maps environment variables onto struct fields using `env` and `envDefault` tags.
	"github.com/caarlos0/env/v11"
	// godotenv reads a .env file and loads its key=value pairs into the process environment.
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the application.
// Path fields are resolved against BaseDir by Load, so every consumer sees absolute paths.
type Config struct {
	BaseDir       string `env:"STATTEAM_BASE_DIR"`                                  // Directory all relative paths below are resolved against
	DefaultStore  string `env:"STATTEAM_DEFAULT_STORE" envDefault:"statteam.db"`     // Store used when the pointer file is absent or stale
	LastStoreFile string `env:"STATTEAM_LAST_STORE_FILE" envDefault:"last_db.txt"`   // Single-line pointer to the last store that was opened
	ImagesDir     string `env:"STATTEAM_IMAGES_DIR" envDefault:"images"`             // Where imported logos, portraits, and map images are copied
	ListenAddr    string `env:"STATTEAM_LISTEN_ADDR" envDefault:"127.0.0.1:8080"`    // Loopback address of the local API
	SessionSecret string `env:"STATTEAM_SESSION_SECRET"`                             // HMAC key for session tokens; generated per process when empty
	LogLevel      string `env:"STATTEAM_LOG_LEVEL" envDefault:"info"`                // debug, info, warn or error
	LogFile       string `env:"STATTEAM_LOG_FILE"`                                   // Optional log file, written in addition to stdout
	Env           string `env:"ENV" envDefault:"development"`                        // The runtime environment: "development" or "production"
}

// Load reads configuration from the environment and returns a populated, validated Config.
// A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = executableDir()
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
	}

	cfg.DefaultStore = cfg.Resolve(cfg.DefaultStore)
	cfg.LastStoreFile = cfg.Resolve(cfg.LastStoreFile)
	cfg.ImagesDir = cfg.Resolve(cfg.ImagesDir)
	if cfg.LogFile != "" {
		cfg.LogFile = cfg.Resolve(cfg.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that env parsing cannot express with tags alone.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("listen address is required")
	}

	return nil
}

// Resolve returns path unchanged when it is absolute or a database URL, otherwise joined to BaseDir.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || strings.Contains(path, "://") {
		return path
	}

	return filepath.Join(c.BaseDir, path)
}

// executableDir mirrors a frozen desktop build: files live next to the binary.
// "go run" builds into a temp dir, so fall back to the working directory there.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil || strings.Contains(exe, os.TempDir()) {
		if wd, errWd := os.Getwd(); errWd == nil {
			return wd
		}

		return "."
	}

	return filepath.Dir(exe)
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
