// Package config loads the settings of the jot command line.
//
// Values are merged in increasing priority: built-in defaults, jotter.toml,
// a .env file, then JOTTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// File names looked up in the config directory.
const (
	FileName = "jotter.toml"
	EnvFile  = ".env"
)

// Environment variables.
const (
	EnvVault      = "JOTTER_VAULT"
	EnvLogLevel   = "JOTTER_LOG_LEVEL"
	EnvAddr       = "JOTTER_ADDR"
	EnvVersioning = "JOTTER_VERSIONING"
	EnvSystemDir  = "JOTTER_SYSTEM_DIR"
)

// Config is the resolved CLI configuration.
type Config struct {
	Vault     string `toml:"vault"`
	LogLevel  string `toml:"log_level"`
	Addr      string `toml:"addr"`
	SystemDir string `toml:"system_dir"`
	ReadOnly  bool   `toml:"read_only"`
	// Versioning is nil when the vault decides (see platform.WithVersioning).
	Versioning *bool `toml:"versioning"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Vault:    ".",
		LogLevel: "info",
		Addr:     "127.0.0.1:8080",
	}
}

// Load resolves the configuration for dir. Missing files are not an error.
// A relative vault path from the TOML file is taken relative to dir.
func Load(dir string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
		if cfg.Vault != "" && !filepath.IsAbs(cfg.Vault) {
			cfg.Vault = filepath.Join(dir, cfg.Vault)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	dotenv, err := godotenv.Read(filepath.Join(dir, EnvFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read %s: %w", EnvFile, err)
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := lookup(EnvVault); ok && v != "" {
		cfg.Vault = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvSystemDir); ok && v != "" {
		cfg.SystemDir = v
	}
	if v, ok := lookup(EnvVersioning); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvVersioning, v, err)
		}
		cfg.Versioning = &b
	}

	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// Level returns the configured log level, Info when invalid.
func (c Config) Level() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}
