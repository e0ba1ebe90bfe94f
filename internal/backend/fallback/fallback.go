// Package fallback provides backup predictors used when a model artifact is
// missing or unreadable.
package fallback

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ekisa-team/plantx/internal/backend"
)

// PredictFunc maps one input tensor to one output tensor.
type PredictFunc func(input []float32) ([]float32, error)

// DetailsFunc reports extra values for one input, added to response metadata.
type DetailsFunc func(input []float32) map[string]any

// Predictor adapts a PredictFunc to backend.Backend.
type Predictor struct {
	name     string
	strategy string
	width    int
	labels   []string
	predict  PredictFunc
	details  DetailsFunc
	closed   atomic.Bool
}

// New creates a predictor. width is the required input length, or zero for any.
func New(name, strategy string, width int, predict PredictFunc) *Predictor {
	return &Predictor{name: name, strategy: strategy, width: width, predict: predict}
}

// WithLabels attaches output class names, reported in response metadata.
func (p *Predictor) WithLabels(labels []string) *Predictor {
	p.labels = labels
	return p
}

// WithDetails attaches a reporter of extra per-request metadata.
func (p *Predictor) WithDetails(fn DetailsFunc) *Predictor {
	p.details = fn
	return p
}

// Provider returns the backend provider.
func (p *Predictor) Provider() backend.Provider {
	return backend.ProviderFallback
}

// Strategy names the substitute algorithm, e.g. "flood_rules".
func (p *Predictor) Strategy() string {
	return p.strategy
}

// Infer runs the substitute algorithm.
func (p *Predictor) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	if p.closed.Load() {
		return nil, backend.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil || len(req.Input) == 0 {
		return nil, backend.ErrInvalidInput
	}
	if p.width > 0 && len(req.Input) != p.width {
		return nil, fmt.Errorf("%w: got %d features, want %d", backend.ErrInvalidInput, len(req.Input), p.width)
	}

	started := time.Now()
	out, err := p.predict(req.Input)
	if err != nil {
		return nil, err
	}

	meta := backend.NewMetadata(backend.ProviderFallback, p.name, started)
	meta.BackendSpecific = map[string]any{"strategy": p.strategy}
	if len(p.labels) > 0 {
		meta.BackendSpecific["labels"] = p.labels
	}
	if p.details != nil {
		for k, v := range p.details(req.Input) {
			meta.BackendSpecific[k] = v
		}
	}
	return &backend.Response{Output: out, Metadata: meta}, nil
}

// Close marks the predictor unusable.
func (p *Predictor) Close() error {
	p.closed.Store(true)
	return nil
}
