// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Storage backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Storage StorageConfig
	Server  ServerConfig
	Search  SearchConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StorageConfig holds on-device storage configuration.
type StorageConfig struct {
	DataPath string // Root of everything the dashboard writes
	Backend  string // badger, sqlite or memory
}

// BackupDir is where backup files are kept.
func (s StorageConfig) BackupDir() string {
	return filepath.Join(s.DataPath, "backups")
}

// BadgerDir is the Badger database directory.
func (s StorageConfig) BadgerDir() string {
	return filepath.Join(s.DataPath, "db")
}

// SQLitePath is the SQLite database file.
func (s StorageConfig) SQLitePath() string {
	return filepath.Join(s.DataPath, "dashboard.db")
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout   time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout    time.Duration // HTTP idle timeout (default: 60s)
	AllowedOrigins []string
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// SearchConfig holds ranked search configuration.
type SearchConfig struct {
	Enabled bool
}

// Flags holds raw command-line values. Empty means "not given".
type Flags struct {
	Env           string
	LogLevel      string
	DataPath      string
	Backend       string
	Host          string
	Port          string
	ReadTimeout   string
	WriteTimeout  string
	IdleTimeout   string
	CORSOrigins   string
	SearchEnabled string
	EnvFile       string
}

// RegisterFlags binds configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Env, "env", "", "Environment (development, staging, production)")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.DataPath, "data-path", "", "Directory for the catalog and backups")
	fs.StringVar(&f.Backend, "storage", "", "Storage backend (badger, sqlite, memory)")
	fs.StringVar(&f.Host, "host", "", "Listen host (default: 127.0.0.1)")
	fs.StringVar(&f.Port, "port", "", "Listen port (default: 8787)")
	fs.StringVar(&f.ReadTimeout, "read-timeout", "", "HTTP read timeout (default: 15s)")
	fs.StringVar(&f.WriteTimeout, "write-timeout", "", "HTTP write timeout (default: 15s)")
	fs.StringVar(&f.IdleTimeout, "idle-timeout", "", "HTTP idle timeout (default: 60s)")
	fs.StringVar(&f.CORSOrigins, "cors-origins", "", "Comma-separated origins allowed to call the API")
	fs.StringVar(&f.SearchEnabled, "search", "", "Enable ranked search (default: true)")
	fs.StringVar(&f.EnvFile, "env-file", ".env", "Path to .env file")
	return f
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
//
// f may be nil when no flags were registered.
func LoadConfig(f *Flags) (*Config, error) {
	if f == nil {
		f = &Flags{EnvFile: ".env"}
	}

	// Load .env file if it exists (silently ignore if not found).
	if f.EnvFile != "" {
		if err := loadEnvFile(f.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f.EnvFile, err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(f.Env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(f.LogLevel, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			DataPath: getConfigValue(f.DataPath, "DATA_PATH", ""),
			Backend:  strings.ToLower(getConfigValue(f.Backend, "STORAGE_BACKEND", BackendBadger)),
		},
		Server: ServerConfig{
			Host:           getConfigValue(f.Host, "SERVER_HOST", "127.0.0.1"),
			Port:           getConfigValue(f.Port, "SERVER_PORT", "8787"),
			AllowedOrigins: splitList(getConfigValue(f.CORSOrigins, "CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		Search: SearchConfig{
			Enabled: getBoolConfigValue(f.SearchEnabled, "SEARCH_ENABLED", true),
		},
	}

	timeouts := []struct {
		flag, env, def string
		dst            *time.Duration
	}{
		{f.ReadTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{f.WriteTimeout, "SERVER_WRITE_TIMEOUT", "15s", &cfg.Server.WriteTimeout},
		{f.IdleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
	}
	for _, t := range timeouts {
		raw := getConfigValue(t.flag, t.env, t.def)
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", t.env, raw, err)
		}
		*t.dst = d
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Storage.Backend {
	case BackendBadger, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend: %s (must be badger, sqlite, or memory)", c.Storage.Backend)
	}

	if c.Storage.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %q", c.Server.Port)
	}

	for _, d := range []time.Duration{c.Server.ReadTimeout, c.Server.WriteTimeout, c.Server.IdleTimeout} {
		if d < 0 {
			return errors.New("server timeouts must not be negative")
		}
	}

	return nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath resolves DATA_PATH, defaulting to ~/AIToolsDashboard/data.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "AIToolsDashboard", "data")

	expanded, err := expandPath(c.Storage.DataPath, defaultPath)
	if err != nil {
		return err
	}
	c.Storage.DataPath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Real environment variables win over the file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
