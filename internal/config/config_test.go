package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Empty(t, cfg.AnnotationsFile)
	assert.Empty(t, cfg.MetricsTextfile)
}

func TestLoad_CustomEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("OUTPUT_DIR", dir)
	t.Setenv("ANNOTATIONS_FILE", "/etc/report/annotations.yaml")
	t.Setenv("METRICS_TEXTFILE", "/var/lib/node_exporter/casereport.prom")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, dir, cfg.OutputDir)
	assert.Equal(t, "/etc/report/annotations.yaml", cfg.AnnotationsFile)
	assert.Equal(t, "/var/lib/node_exporter/casereport.prom", cfg.MetricsTextfile)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoad_MissingOutputDir(t *testing.T) {
	t.Setenv("OUTPUT_DIR", filepath.Join(t.TempDir(), "absent"))
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OUTPUT_DIR")
}

func TestLoad_OutputDirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	t.Setenv("OUTPUT_DIR", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}
