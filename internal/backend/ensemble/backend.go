package ensemble

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ekisa-team/plantx/internal/backend"
)

// Model serves an Ensemble as a backend.
type Model struct {
	name   string
	e      *Ensemble
	form   Form
	closed atomic.Bool
}

// NewModel wraps e. Form records whether it was decoded whole or rebuilt from weights.
func NewModel(name string, e *Ensemble, form Form) *Model {
	return &Model{name: name, e: e, form: form}
}

// Provider returns the backend provider.
func (m *Model) Provider() backend.Provider {
	return backend.ProviderEnsemble
}

// Form reports how the model was built.
func (m *Model) Form() Form {
	return m.form
}

// Ensemble returns the underlying trees.
func (m *Model) Ensemble() *Ensemble {
	return m.e
}

// Infer evaluates the ensemble on a single row.
func (m *Model) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	if m.closed.Load() {
		return nil, backend.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil || len(req.Input) == 0 {
		return nil, backend.ErrInvalidInput
	}

	started := time.Now()
	x := make([]float64, len(req.Input))
	for i, v := range req.Input {
		x[i] = float64(v)
	}

	y, err := m.e.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", backend.ErrInvalidInput, err)
	}

	out := make([]float32, len(y))
	for i, v := range y {
		out[i] = float32(v)
	}

	meta := backend.NewMetadata(backend.ProviderEnsemble, m.name, started)
	meta.BackendSpecific = map[string]any{
		"form":  m.form.String(),
		"trees": len(m.e.Trees),
	}
	return &backend.Response{Output: out, Metadata: meta}, nil
}

// Close marks the model unusable.
func (m *Model) Close() error {
	m.closed.Store(true)
	return nil
}
