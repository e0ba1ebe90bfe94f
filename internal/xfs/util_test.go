package xfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "models"), ExpandTilde("~/models"))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, "/abs/models", ExpandTilde("/abs/models"))
	assert.Equal(t, "~user/models", ExpandTilde("~user/models"))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "/abs/a.onnx", Resolve("/models", "/abs/a.onnx"))
	assert.Equal(t, filepath.Join("/models", "a.onnx"), Resolve("/models", "a.onnx"))
	assert.Equal(t, "", Resolve("/models", ""))
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.pb")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	ok, err := IsRegularFile(file)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsRegularFile(dir)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsRegularFile(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)
}
