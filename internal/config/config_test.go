package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tratlus/internal/timeline"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	want, err := homedir.Expand(DefaultDBPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(want), cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, timeline.DefaultGeometry(), cfg.Geometry())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"TRATLUS_DB":          ":memory:",
		"TRATLUS_LOG_LEVEL":   "debug",
		"TRATLUS_LOG_FORMAT":  "json",
		"TRATLUS_PX_PER_HOUR": "60",
	})
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, 60.0, cfg.Geometry().PxPerHour)

	var buf bytes.Buffer
	cfg.NewLogger(&buf).Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"level":   {"TRATLUS_LOG_LEVEL": "chatty"},
		"format":  {"TRATLUS_LOG_FORMAT": "xml"},
		"snap":    {"TRATLUS_SNAP_MINUTES": "45"},
		"px":      {"TRATLUS_PX_PER_HOUR": "0"},
		"not int": {"TRATLUS_SNAP_MINUTES": "half"},
		"homedir": {"TRATLUS_DB": "~someone/tratlus.db"},
	}
	for name, environ := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(environ)
			assert.Error(t, err)
		})
	}
}

func TestNewLogger_TextRespectsLevel(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"TRATLUS_LOG_LEVEL": "warn"})
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("quiet")
	logger.Warn("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "level=WARN msg=loud")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TRATLUS_TEST_DOTENV=from-file\n"), 0o600))

	t.Setenv("TRATLUS_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("TRATLUS_TEST_DOTENV"))
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("TRATLUS_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
