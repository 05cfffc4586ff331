package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Storage: StorageConfig{DataPath: "/some/path", Backend: BackendBadger},
		Server:  ServerConfig{Host: "127.0.0.1", Port: "8787"},
	}
}

// clearEnv unsets every variable LoadConfig reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "LOG_LEVEL", "DATA_PATH", "STORAGE_BACKEND", "SERVER_HOST", "SERVER_PORT",
		"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT",
		"CORS_ALLOWED_ORIGINS", "SEARCH_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Backends(t *testing.T) {
	for _, backend := range []string{BackendBadger, BackendSQLite, BackendMemory} {
		cfg := validConfig()
		cfg.Storage.Backend = backend
		assert.NoError(t, cfg.Validate(), backend)
	}

	cfg := validConfig()
	cfg.Storage.Backend = "localstorage"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage backend")
}

func TestValidate_Port(t *testing.T) {
	for _, port := range []string{"0", "65536", "http", ""} {
		cfg := validConfig()
		cfg.Server.Port = port
		assert.Error(t, cfg.Validate(), port)
	}
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.DataPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data path cannot be empty")
}

func TestExpandDataPath_EmptyUsesDefault(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, cfg.expandDataPath())

	homeDir, _ := os.UserHomeDir() //nolint:errcheck // Test setup
	assert.Equal(t, filepath.Join(homeDir, "AIToolsDashboard", "data"), cfg.Storage.DataPath)
}

func TestExpandDataPath_TildeExpansion(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{DataPath: "~/my-data"}}

	require.NoError(t, cfg.expandDataPath())

	homeDir, _ := os.UserHomeDir() //nolint:errcheck // Test setup
	assert.Equal(t, filepath.Join(homeDir, "my-data"), cfg.Storage.DataPath)
}

func TestExpandDataPath_RelativePath(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{DataPath: "relative/path"}}

	require.NoError(t, cfg.expandDataPath())

	assert.True(t, filepath.IsAbs(cfg.Storage.DataPath))
	assert.Contains(t, cfg.Storage.DataPath, "relative/path")
}

func TestStorageConfig_Paths(t *testing.T) {
	s := StorageConfig{DataPath: "/data"}
	assert.Equal(t, "/data/backups", s.BackupDir())
	assert.Equal(t, "/data/db", s.BadgerDir())
	assert.Equal(t, "/data/dashboard.db", s.SQLitePath())
}

func TestServerConfig_Addr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8787", ServerConfig{Host: "127.0.0.1", Port: "8787"}.Addr())
	assert.Equal(t, "[::1]:80", ServerConfig{Host: "::1", Port: "80"}.Addr())
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(&Flags{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, BackendBadger, cfg.Storage.Backend)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "8787", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Search.Enabled)
}

func TestLoadConfig_FlagsBeatEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SEARCH_ENABLED", "false")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--storage", "memory",
		"--data-path", t.TempDir(),
		"--cors-origins", "http://a.test, ,http://b.test",
		"--env-file", "",
	}))

	cfg, err := LoadConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.False(t, cfg.Search.Enabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestLoadConfig_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	_, err := LoadConfig(&Flags{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_READ_TIMEOUT")
}

func TestLoadConfig_InvalidBackend(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(&Flags{Backend: "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestGetConfigValue_Precedence(t *testing.T) {
	assert.Equal(t, "flag-value", getConfigValue("flag-value", "ENV_KEY", "default-value"))

	t.Setenv("TEST_ENV_KEY", "env-value")
	assert.Equal(t, "env-value", getConfigValue("", "TEST_ENV_KEY", "default-value"))

	assert.Equal(t, "default-value", getConfigValue("", "NONEXISTENT_KEY", "default-value"))
}

func TestGetBoolConfigValue(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"true", true},
		{"YES", true},
		{"1", true},
		{"false", false},
		{"off", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, getBoolConfigValue(tt.value, "UNSET_BOOL_KEY", true))
		})
	}
}

func TestLoadEnvFile_ValidFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := `# Test env file
ENV=staging
LOG_LEVEL=debug
# Comment line
QUOTED_VALUE="some value"
SINGLE_QUOTED='another value'
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	for _, key := range []string{"ENV", "LOG_LEVEL", "QUOTED_VALUE", "SINGLE_QUOTED"} {
		t.Setenv(key, "")
	}

	require.NoError(t, loadEnvFile(envFile))

	assert.Equal(t, "staging", os.Getenv("ENV"))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "some value", os.Getenv("QUOTED_VALUE"))
	assert.Equal(t, "another value", os.Getenv("SINGLE_QUOTED"))
}

func TestLoadEnvFile_InvalidFormat(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := `VALID_KEY=valid_value
INVALID LINE WITHOUT EQUALS
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))
	t.Setenv("VALID_KEY", "")

	err := loadEnvFile(envFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format at line 2")
}

func TestLoadEnvFile_ExistingEnvVarsNotOverwritten(t *testing.T) {
	t.Setenv("TEST_VAR", "original-value")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(`TEST_VAR=new-value`), 0o644))

	require.NoError(t, loadEnvFile(envFile))
	assert.Equal(t, "original-value", os.Getenv("TEST_VAR"))
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("STORAGE_BACKEND=sqlite\nSERVER_PORT=8899\n"), 0o644))

	cfg, err := LoadConfig(&Flags{EnvFile: envFile, DataPath: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "8899", cfg.Server.Port)
}
