package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookupMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(lookupMap(map[string]string{
		EnvAddr:            "127.0.0.1:9000",
		EnvRateLimit:       "0.5",
		EnvRateBurst:       "3",
		EnvShutdownTimeout: "10s",
		EnvCORSOrigin:      "",
		EnvLogLevel:        "debug",
		EnvLogFormat:       "JSON",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 0.5, cfg.RateLimit)
	assert.Equal(t, 3, cfg.RateBurst)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "", cfg.CORSOrigin)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		EnvRateLimit:       "-1",
		EnvRateBurst:       "many",
		EnvShutdownTimeout: "soon",
		EnvLogLevel:        "loud",
		EnvLogFormat:       "xml",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := FromEnv(lookupMap(map[string]string{key: val}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GORCFRAME_RATE_BURST=7\n"), 0o644))
	t.Setenv(EnvRateBurst, "")
	require.NoError(t, os.Unsetenv(EnvRateBurst))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.RateBurst)
}

func TestLoadEnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GORCFRAME_ADDR=:1111\n"), 0o644))
	t.Setenv(EnvAddr, ":2222")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":2222", cfg.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = "json"

	cfg.Logger(&buf).Info("hello", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	cfg.LogFormat = "text"
	cfg.Logger(&buf).Debug("hidden")
	assert.Empty(t, buf.String())
}
