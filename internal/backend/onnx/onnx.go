// Package onnx serves ONNX graphs through ONNX Runtime.
package onnx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/ekisa-team/plantx/internal/backend"
)

// Error definitions for the onnx package.
var (
	ErrRuntime     = errors.New("onnx runtime unavailable")
	ErrOutputType  = errors.New("unsupported output tensor type")
	ErrNoInputs    = errors.New("graph declares no inputs")
	ErrSessionGone = errors.New("session destroyed")
)

// Decoder builds ONNX Runtime sessions from artifact bytes. The runtime
// environment is initialised on first use and shared by every session.
type Decoder struct {
	libraryPath string

	initOnce sync.Once
	initErr  error
	owned    bool
}

// NewDecoder creates a decoder. An empty libraryPath uses the platform default
// shared library name.
func NewDecoder(libraryPath string) *Decoder {
	return &Decoder{libraryPath: libraryPath}
}

// Provider returns the backend provider.
func (d *Decoder) Provider() backend.Provider {
	return backend.ProviderONNX
}

func (d *Decoder) init() error {
	d.initOnce.Do(func() {
		if ort.IsInitialized() {
			return
		}
		if d.libraryPath != "" {
			ort.SetSharedLibraryPath(d.libraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			d.initErr = fmt.Errorf("%w: %w", ErrRuntime, err)
			return
		}
		d.owned = true
		slog.Debug("ONNX runtime initialized", "library", d.libraryPath)
	})
	return d.initErr
}

// Decode creates a session over data. Tensor names come from spec, or from
// the graph itself when spec leaves them empty.
func (d *Decoder) Decode(spec backend.Spec, data []byte) (backend.Backend, error) {
	if err := d.init(); err != nil {
		return nil, err
	}

	inputs, outputs := spec.Inputs, spec.Outputs
	if len(inputs) == 0 || len(outputs) == 0 {
		in, out, err := ort.GetInputOutputInfoWithONNXData(data)
		if err != nil {
			return nil, fmt.Errorf("failed to read graph signature: %w", err)
		}
		if len(inputs) == 0 {
			for _, info := range in {
				inputs = append(inputs, info.Name)
			}
		}
		if len(outputs) == 0 {
			for _, info := range out {
				outputs = append(outputs, info.Name)
			}
		}
	}
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer opts.Destroy()

	session, err := ort.NewDynamicAdvancedSessionWithONNXData(data, inputs[:1], outputs, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load ONNX model: %w", err)
	}

	return &Model{
		name:    spec.Name,
		session: session,
		input:   inputs[0],
		outputs: outputs,
	}, nil
}

// Close tears down the runtime environment if this decoder created it.
func (d *Decoder) Close() error {
	if !d.owned || !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}

// Model is a loaded ONNX session with a single float32 input.
type Model struct {
	name    string
	input   string
	outputs []string

	mu      sync.Mutex
	session *ort.DynamicAdvancedSession
}

// Provider returns the backend provider.
func (m *Model) Provider() backend.Provider {
	return backend.ProviderONNX
}

// Infer runs the graph. The first output becomes Response.Output; every output
// is also returned by name under the "outputs" metadata key.
func (m *Model) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil || len(req.Input) == 0 {
		return nil, backend.ErrInvalidInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, ErrSessionGone
	}

	started := time.Now()
	shape := req.Shape
	if len(shape) == 0 {
		shape = []int64{1, int64(len(req.Input))}
	}

	input, err := ort.NewTensor(ort.NewShape(shape...), req.Input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", backend.ErrInvalidInput, err)
	}
	defer input.Destroy()

	// Nil outputs are allocated by the runtime.
	outs := make([]ort.Value, len(m.outputs))
	if err := m.session.Run([]ort.Value{input}, outs); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	defer func() {
		for _, o := range outs {
			if o != nil {
				o.Destroy()
			}
		}
	}()

	named := make(map[string][]float32, len(outs))
	for i, o := range outs {
		vals, err := Float32s(o)
		if err != nil {
			return nil, fmt.Errorf("output %q: %w", m.outputs[i], err)
		}
		named[m.outputs[i]] = vals
	}

	meta := backend.NewMetadata(backend.ProviderONNX, m.name, started)
	meta.BackendSpecific = map[string]any{"outputs": named}
	return &backend.Response{Output: named[m.outputs[0]], Metadata: meta}, nil
}

// Close destroys the session.
func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil
	}
	err := m.session.Destroy()
	m.session = nil
	return err
}

// Float32s copies a numeric tensor into a float32 slice.
func Float32s(v ort.Value) ([]float32, error) {
	switch t := v.(type) {
	case *ort.Tensor[float32]:
		return append([]float32(nil), t.GetData()...), nil
	case *ort.Tensor[float64]:
		return convert(t.GetData()), nil
	case *ort.Tensor[int64]:
		return convert(t.GetData()), nil
	case *ort.Tensor[int32]:
		return convert(t.GetData()), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrOutputType, v)
	}
}

func convert[T float64 | int64 | int32](in []T) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
