package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ekisa-team/plantx/internal/backend"
	"github.com/ekisa-team/plantx/internal/config"
	"github.com/ekisa-team/plantx/internal/xfs"
)

// ReadFunc reads an artifact file.
type ReadFunc func(path string) ([]byte, error)

// FallbackFunc builds the backup model for a kind from the configuration in
// effect at load time and the kind's model settings.
type FallbackFunc func(cfg *config.Config, mc config.ModelConfig) (backend.Backend, error)

// Observer is notified of every status change.
type Observer func(kind Kind, status Status)

// Option configures a Registry.
type Option func(*Registry)

// WithReader replaces os.ReadFile for artifact reads.
func WithReader(read ReadFunc) Option {
	return func(r *Registry) {
		r.read = read
	}
}

// WithDecoders sets the artifact decoders, tried in registration order.
func WithDecoders(decoders *backend.Registry) Option {
	return func(r *Registry) {
		r.decoders = decoders
	}
}

// WithFallback sets the backup model for kind.
func WithFallback(kind Kind, fn FallbackFunc) Option {
	return func(r *Registry) {
		r.fallbacks[kind] = fn
	}
}

// WithObserver registers a status observer. Observers must not block.
func WithObserver(fn Observer) Option {
	return func(r *Registry) {
		r.observers = append(r.observers, fn)
	}
}

// Registry stores one handle per configured model kind and loads each lazily.
type Registry struct {
	handles   map[Kind]*Handle
	modelsDir string
	cfg       *config.Config
	mu        sync.RWMutex

	decoders  *backend.Registry
	fallbacks map[Kind]FallbackFunc
	observers []Observer
	read      ReadFunc
}

// NewRegistry creates a registry with an unloaded handle per configured kind.
func NewRegistry(cfg *config.Config, opts ...Option) *Registry {
	r := &Registry{
		handles:   make(map[Kind]*Handle),
		fallbacks: make(map[Kind]FallbackFunc),
		read:      os.ReadFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.decoders == nil {
		r.decoders = backend.NewRegistry()
	}

	r.modelsDir = ResolveModelsPath(cfg)
	r.cfg = cfg
	for name, mc := range cfg.Models {
		kind := Kind(name)
		r.handles[kind] = newHandle(kind, xfs.Resolve(r.modelsDir, mc.Path), mc)
	}
	return r
}

// Handle returns the handle for kind without loading it.
func (r *Registry) Handle(kind Kind) (*Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handles[kind]
	return h, ok
}

// Handles returns every handle in kind order.
func (r *Registry) Handles() []*Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Handle, 0, len(r.handles))
	for _, h := range r.handles {
		out = append(out, h)
	}
	slices.SortFunc(out, func(a, b *Handle) int {
		return kindOrder(a.kind) - kindOrder(b.kind)
	})
	return out
}

func kindOrder(k Kind) int {
	if i := slices.Index(Kinds(), k); i >= 0 {
		return i
	}
	return len(Kinds())
}

// Get returns the handle for kind, loading it on first use. When no instance
// could be produced the handle is returned together with its *LoadError.
func (r *Registry) Get(ctx context.Context, kind Kind) (*Handle, error) {
	h, ok := r.Handle(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, kind)
	}

	if !h.attempted.Load() {
		h.mu.Lock()
		if !h.attempted.Load() {
			r.load(ctx, h)
			h.attempted.Store(true)
		}
		h.mu.Unlock()
	}

	if !h.IsLoaded() {
		return h, h.LoadError()
	}
	return h, nil
}

// Warm loads the given kinds concurrently, or every kind when none are given.
// Individual load failures are recorded on their handles, not returned.
func (r *Registry) Warm(ctx context.Context, kinds ...Kind) error {
	if len(kinds) == 0 {
		for _, h := range r.Handles() {
			kinds = append(kinds, h.kind)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		g.Go(func() error {
			_, err := r.Get(gctx, kind)
			if errors.Is(err, ErrNotFound) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// Reset discards the instance of kind so the next Get loads again.
func (r *Registry) Reset(kind Kind) error {
	r.mu.Lock()
	old, ok := r.handles[kind]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, kind)
	}
	r.handles[kind] = newHandle(kind, old.path, old.cfg)
	r.mu.Unlock()

	r.notify(kind, StatusUnloaded)
	return closeHandle(old)
}

// Reconfigure applies a new configuration. Handles whose artifact path or
// settings changed are reset; kinds no longer configured are dropped.
func (r *Registry) Reconfigure(cfg *config.Config) {
	modelsDir := ResolveModelsPath(cfg)

	r.mu.Lock()
	var stale []*Handle
	for kind, old := range r.handles {
		if _, ok := cfg.Models[string(kind)]; !ok {
			delete(r.handles, kind)
			stale = append(stale, old)
		}
	}
	for name, mc := range cfg.Models {
		kind := Kind(name)
		path := xfs.Resolve(modelsDir, mc.Path)
		if old, ok := r.handles[kind]; ok {
			if old.path == path && sameModelConfig(old.cfg, mc) && !fallbackChanged(kind, r.cfg, cfg) {
				continue
			}
			stale = append(stale, old)
		}
		r.handles[kind] = newHandle(kind, path, mc)
	}
	r.modelsDir = modelsDir
	r.cfg = cfg
	r.mu.Unlock()

	for _, h := range stale {
		slog.Info("Model reset by configuration change", "kind", h.kind, "path", h.path)
		r.notify(h.kind, StatusUnloaded)
		if err := closeHandle(h); err != nil {
			slog.Warn("Failed to close model", "kind", h.kind, "error", err)
		}
	}
}

func sameModelConfig(a, b config.ModelConfig) bool {
	return a.UseFallback() == b.UseFallback() &&
		slices.Equal(a.Inputs, b.Inputs) &&
		slices.Equal(a.Outputs, b.Outputs) &&
		slices.Equal(a.Labels, b.Labels) &&
		sameImageConfig(a.Image, b.Image)
}

func sameImageConfig(a, b *config.ImageConfig) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Size == b.Size &&
		strings.EqualFold(a.Layout, b.Layout) &&
		slices.Equal(a.Mean, b.Mean) &&
		slices.Equal(a.Std, b.Std)
}

// fallbackChanged reports whether a setting outside the model block that the
// backup model of kind is built from differs between a and b.
func fallbackChanged(kind Kind, a, b *config.Config) bool {
	return kind == KindYield && a.Yield.Seed != b.Yield.Seed
}

// current returns the configuration in effect.
func (r *Registry) current() *config.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// Close closes every loaded instance and the decoders.
func (r *Registry) Close() error {
	r.mu.Lock()
	handles := make([]*Handle, 0, len(r.handles))
	for _, h := range r.handles {
		handles = append(handles, h)
	}
	r.mu.Unlock()

	var errs []error
	for _, h := range handles {
		if err := closeHandle(h); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.decoders.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func closeHandle(h *Handle) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if b := h.Backend(); b != nil {
		return b.Close()
	}
	return nil
}

func (r *Registry) notify(kind Kind, status Status) {
	for _, fn := range r.observers {
		fn(kind, status)
	}
}
