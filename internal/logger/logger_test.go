package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/plantx/internal/env"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(env.Production, WithOutput(&buf))

	log.Info("Model loaded", "kind", "crop_classifier")
	log.Debug("Hidden at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Model loaded", entry["msg"])
	assert.Equal(t, "crop_classifier", entry["kind"])
	assert.NotContains(t, buf.String(), "Hidden")
}

func TestNew_DevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(env.Development, WithOutput(&buf))

	log.Debug("Resolving artifact", "path", "/tmp/x")
	assert.Contains(t, buf.String(), "Resolving artifact")
}

func TestNew_LevelOverride(t *testing.T) {
	var buf bytes.Buffer
	log := New(env.Development, WithOutput(&buf), WithLevel(slog.LevelWarn))

	log.Info("quiet")
	assert.Empty(t, buf.String())
}

func TestNew_TeesToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "plantx.log")
	log := New(env.Production, WithOutput(&buf), WithLogToFile(true), WithLogFile(path))

	log.With("component", "registry").Warn("Fallback model substituted", "kind", "yield_regressor")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Fallback model substituted")
	assert.Contains(t, string(data), "registry")
	assert.Contains(t, buf.String(), "Fallback model substituted")
}
