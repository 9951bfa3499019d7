package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Store:  StoreConfig{DataPath: "/some/path"},
		Auth:   AuthConfig{AccessTokenDuration: 24 * time.Hour, LoginRatePerMinute: 10, LoginBurst: 5},
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

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		cfg := validConfig()
		cfg.Logger.Level = level
		assert.NoError(t, cfg.Validate(), "level %s", level)
	}

	cfg := validConfig()
	cfg.Logger.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsEmptyDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Store.DataPath = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsZeroLoginRate(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.LoginRatePerMinute = 0
	assert.Error(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := expandPath("~/books", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "books"), expanded)

	expanded, err = expandPath("", "/default/path")
	require.NoError(t, err)
	assert.Equal(t, "/default/path", expanded)

	expanded, err = expandPath("/abs/path/../path", "")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", expanded)
}

func TestDatabasePath(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, filepath.Join("/some/path", "db"), cfg.DatabasePath())
}

func TestGetConfigValuePrecedence(t *testing.T) {
	t.Setenv("BOOKHAVEN_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "BOOKHAVEN_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "BOOKHAVEN_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "BOOKHAVEN_TEST_MISSING", "default"))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nBOOKHAVEN_ENVFILE_A=hello\nBOOKHAVEN_ENVFILE_B=\"quoted\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("BOOKHAVEN_ENVFILE_A")
		os.Unsetenv("BOOKHAVEN_ENVFILE_B")
	})

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "hello", os.Getenv("BOOKHAVEN_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("BOOKHAVEN_ENVFILE_B"))
}

func TestLoadEnvFileDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BOOKHAVEN_ENVFILE_C=file\n"), 0o600))

	t.Setenv("BOOKHAVEN_ENVFILE_C", "real")
	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "real", os.Getenv("BOOKHAVEN_ENVFILE_C"))
}
