package model

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ekisa-team/plantx/internal/backend"
	"github.com/ekisa-team/plantx/internal/config"
)

// Kind identifies one of the fixed model slots.
type Kind string

const (
	KindCrop    Kind = config.KindCrop
	KindYield   Kind = config.KindYield
	KindRisk    Kind = config.KindRisk
	KindDisease Kind = config.KindDisease
	KindSoil    Kind = config.KindSoil
)

// Kinds returns every kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindCrop, KindYield, KindRisk, KindDisease, KindSoil}
}

// Status is the current loading status of a model.
type Status string

const (
	// StatusUnloaded indicates that no load has been attempted.
	StatusUnloaded Status = "unloaded"

	// StatusLoading indicates that the artifact is being loaded.
	StatusLoading Status = "loading"

	// StatusLoaded indicates that the artifact loaded.
	StatusLoaded Status = "loaded"

	// StatusDegraded indicates that the artifact failed and a backup model answers instead.
	StatusDegraded Status = "degraded"

	// StatusFailed indicates that the artifact failed and no backup exists.
	StatusFailed Status = "failed"
)

// Variant tags what kind of instance a handle holds.
type Variant string

const (
	VariantEnsemble    Variant = "ensemble"
	VariantRawWeights  Variant = "raw_weights"
	VariantONNX        Variant = "onnx"
	VariantFallback    Variant = "fallback"
	VariantUnavailable Variant = "unavailable"
)

type state struct {
	instance backend.Backend
	status   Status
	variant  Variant
	loadErr  error
	loadedAt time.Time
}

// Handle owns the instance for one model kind. The instance is created at most
// once per handle.
type Handle struct {
	kind Kind
	path string
	cfg  config.ModelConfig

	attempted atomic.Bool
	mu        sync.Mutex
	state     atomic.Pointer[state]
}

func newHandle(kind Kind, path string, cfg config.ModelConfig) *Handle {
	h := &Handle{kind: kind, path: path, cfg: cfg}
	h.state.Store(&state{status: StatusUnloaded, variant: VariantUnavailable})
	return h
}

// Kind returns the model kind.
func (h *Handle) Kind() Kind {
	return h.kind
}

// Path returns the resolved artifact path.
func (h *Handle) Path() string {
	return h.path
}

// Config returns the model configuration the handle was built from.
func (h *Handle) Config() config.ModelConfig {
	return h.cfg
}

// Status returns the current status.
func (h *Handle) Status() Status {
	return h.state.Load().status
}

// Variant returns the instance variant.
func (h *Handle) Variant() Variant {
	return h.state.Load().variant
}

// IsLoaded reports whether the handle holds an instance.
func (h *Handle) IsLoaded() bool {
	return h.state.Load().instance != nil
}

// Fallback reports whether the instance is a backup model.
func (h *Handle) Fallback() bool {
	return h.state.Load().variant == VariantFallback
}

// LoadError returns the artifact failure, if any. It stays set when a backup
// model was substituted.
func (h *Handle) LoadError() error {
	return h.state.Load().loadErr
}

// LoadedAt returns when the instance was published.
func (h *Handle) LoadedAt() time.Time {
	return h.state.Load().loadedAt
}

// Backend returns the instance, or nil when nothing is loaded.
func (h *Handle) Backend() backend.Backend {
	return h.state.Load().instance
}

// Infer runs the instance.
func (h *Handle) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	s := h.state.Load()
	if s.instance == nil {
		if s.loadErr != nil {
			return nil, s.loadErr
		}
		return nil, fmt.Errorf("%w: %s not loaded", ErrModelUnavailable, h.kind)
	}
	return s.instance.Infer(ctx, req)
}

// Info is a serialisable snapshot of a handle.
type Info struct {
	Kind     Kind       `json:"kind"`
	Path     string     `json:"path"`
	Status   Status     `json:"status"`
	Variant  Variant    `json:"variant"`
	Fallback bool       `json:"fallback"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// Info returns a snapshot of the handle.
func (h *Handle) Info() Info {
	s := h.state.Load()
	info := Info{
		Kind:     h.kind,
		Path:     h.path,
		Status:   s.status,
		Variant:  s.variant,
		Fallback: s.variant == VariantFallback,
	}
	if !s.loadedAt.IsZero() {
		t := s.loadedAt
		info.LoadedAt = &t
	}
	if s.loadErr != nil {
		info.Error = s.loadErr.Error()
	}
	return info
}
