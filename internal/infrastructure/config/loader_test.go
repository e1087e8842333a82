package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	infraconfig "github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Server struct {
		Port    int           `env:"TEST_LOADER_PORT"    yaml:"port"`
		Name    string        `env:"TEST_LOADER_NAME"    yaml:"name"`
		Timeout time.Duration `env:"TEST_LOADER_TIMEOUT" yaml:"timeout"`
		Debug   bool          `env:"TEST_LOADER_DEBUG"   yaml:"debug"`
		Tags    []string      `env:"TEST_LOADER_TAGS"    yaml:"tags"`
	} `yaml:"server"`
}

func writeFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("TEST_LOADER_PORT", "4000")

	cfg, err := infraconfig.Load[testConfig](filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestLoad_FileThenEnv(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	path := writeFile(t, "server:\n  port: 8080\n  name: from-file\n  timeout: 5s\n")

	t.Setenv("TEST_LOADER_NAME", "from-env")
	t.Setenv("TEST_LOADER_DEBUG", "yes")
	t.Setenv("TEST_LOADER_TAGS", "a, b ,c")

	cfg, err := infraconfig.Load[testConfig](path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Server.Name)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Server.Tags)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	path := writeFile(t, "server: [unterminated")

	_, err := infraconfig.Load[testConfig](path)
	require.Error(t, err)
}

func TestLoad_UnparsableIntKeepsValue(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	path := writeFile(t, "server:\n  port: 8080\n")
	t.Setenv("TEST_LOADER_PORT", "not-a-number")

	cfg, err := infraconfig.Load[testConfig](path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_EnvFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("TEST_LOADER_ENVFILE_NAME=dotenv\n"), 0o600))
	t.Setenv("ENV_FILE", envPath)
	t.Cleanup(func() { _ = os.Unsetenv("TEST_LOADER_ENVFILE_NAME") })

	type envFileConfig struct {
		Name string `env:"TEST_LOADER_ENVFILE_NAME"`
	}

	cfg, err := infraconfig.Load[envFileConfig](filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "dotenv", cfg.Name)
}

func TestLoadWithDefaults_EnvWinsOverDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("TEST_LOADER_PORT", "9999")

	cfg, err := infraconfig.LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yml"),
		func(c *testConfig) {
			c.Server.Port = 1234
			c.Server.Name = "default-name"
		})
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "default-name", cfg.Server.Name)
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "config.yml", infraconfig.GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/app/config.yml")
	assert.Equal(t, "/etc/app/config.yml", infraconfig.GetConfigPath("config.yml"))
}

func TestValidatePort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		port    int
		wantErr bool
	}{
		{port: 0, wantErr: true},
		{port: 1, wantErr: false},
		{port: 3000, wantErr: false},
		{port: 65535, wantErr: false},
		{port: 65536, wantErr: true},
	}

	for _, tt := range tests {
		err := infraconfig.ValidatePort("service.port", tt.port)
		if !tt.wantErr {
			assert.NoError(t, err, "port %d", tt.port)
			continue
		}

		var vErr *infraconfig.ValidationError
		require.True(t, errors.As(err, &vErr), "port %d", tt.port)
		assert.Equal(t, "service.port", vErr.Field)
	}
}

func TestLoggingConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := infraconfig.LoggingConfig{}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())

	cfg.Level = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, "logging.level: must be one of: debug, info, warn, error", err.Error())
}
