package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, 0, config.Server.GRPCPort)
	assert.Equal(t, 5*time.Second, config.Server.ShutdownTimeout)
	assert.Equal(t, "https://api.themoviedb.org/3", config.TMDB.BaseURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w342", config.TMDB.ImageBaseURL)
	assert.Equal(t, 10*time.Second, config.TMDB.Timeout)
	assert.Empty(t, config.TMDB.APIKey)
	assert.Equal(t, "https://www.omdbapi.com/", config.OMDB.BaseURL)
	assert.False(t, config.RatingsEnabled())
	assert.Equal(t, "web", config.Static.Dir)
	assert.Equal(t, "info", config.Log.Level)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	clearEnv(t)

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 3000, config.Server.Port)
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
server:
  port: 8080
  grpc_port: 9090
tmdb:
  api_key: file-key
  timeout: 3s
omdb:
  api_key: omdb-file-key
static:
  dir: public
log:
  level: debug
  format: console
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 9090, config.Server.GRPCPort)
	assert.Equal(t, "file-key", config.TMDB.APIKey)
	assert.Equal(t, 3*time.Second, config.TMDB.Timeout)
	assert.True(t, config.RatingsEnabled())
	assert.Equal(t, "public", config.Static.Dir)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "console", config.Log.Format)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TMDB_API_KEY", "env-tmdb")
	t.Setenv("OMDB_API_KEY", "env-omdb")
	t.Setenv("PORT", "4000")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("STATIC_DIR", "/srv/www")

	path := writeConfig(t, `
server:
  port: 8080
tmdb:
  api_key: file-key
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-tmdb", config.TMDB.APIKey)
	assert.Equal(t, "env-omdb", config.OMDB.APIKey)
	assert.Equal(t, 4000, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "/srv/www", config.Static.Dir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "server: [port"},
		{"port out of range", "server:\n  port: 70000\n"},
		{"grpc port collides", "server:\n  port: 8080\n  grpc_port: 8080\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLogConfig_Logger(t *testing.T) {
	lc := &LogConfig{
		Level:  "debug",
		Format: "console",
		Output: "both",
		File: FileLogConfig{
			Filename:   "app.log",
			MaxSize:    10,
			MaxAge:     7,
			MaxBackups: 3,
			Compress:   true,
		},
		EnableCaller: true,
	}

	cfg := lc.Logger()
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "both", cfg.Output)
	assert.Equal(t, "app.log", cfg.File.Filename)
	assert.Equal(t, 10, cfg.File.MaxSize)
	assert.True(t, cfg.EnableCaller)
	assert.False(t, cfg.EnableStacktrace)
	assert.NoError(t, cfg.Validate())
}
