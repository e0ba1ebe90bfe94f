package onnx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/ekisa-team/plantx/internal/backend"
)

func TestDecoder_MissingRuntime(t *testing.T) {
	if ort.IsInitialized() {
		t.Skip("runtime already initialized in this process")
	}

	d := NewDecoder(filepath.Join(t.TempDir(), "libonnxruntime.so"))
	assert.Equal(t, backend.ProviderONNX, d.Provider())

	_, err := d.Decode(backend.Spec{Name: "crop_classifier"}, []byte("not a graph"))
	require.ErrorIs(t, err, ErrRuntime)

	// The failure is remembered rather than retried.
	_, err = d.Decode(backend.Spec{Name: "crop_classifier"}, []byte("not a graph"))
	require.ErrorIs(t, err, ErrRuntime)

	assert.NoError(t, d.Close())
}

func TestFloat32s_Unsupported(t *testing.T) {
	_, err := Float32s(nil)
	require.ErrorIs(t, err, ErrOutputType)
}

func TestConvert(t *testing.T) {
	assert.Equal(t, []float32{1, 2.5}, convert([]float64{1, 2.5}))
	assert.Equal(t, []float32{3}, convert([]int64{3}))
}

func TestModel_ClosedSession(t *testing.T) {
	m := &Model{name: "soil_classifier", input: "input", outputs: []string{"output"}}
	require.NoError(t, m.Close())

	_, err := m.Infer(t.Context(), backend.NewRequest([]float32{1}))
	require.ErrorIs(t, err, ErrSessionGone)
}
