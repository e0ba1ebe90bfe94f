package model

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ekisa-team/plantx/internal/backend"
	"github.com/ekisa-team/plantx/internal/backend/ensemble"
	"github.com/ekisa-team/plantx/internal/metrics"
	"github.com/ekisa-team/plantx/internal/xfs"
)

// load runs the load pipeline and publishes the outcome. Callers hold h.mu.
func (r *Registry) load(_ context.Context, h *Handle) {
	started := time.Now()
	r.publish(h, &state{status: StatusLoading, variant: VariantUnavailable})

	instance, variant, err := r.decode(h)
	if err == nil {
		r.publish(h, &state{
			instance: instance,
			status:   StatusLoaded,
			variant:  variant,
			loadedAt: time.Now(),
		})
		metrics.RecordModelLoad(string(h.kind), string(StatusLoaded), time.Since(started))
		slog.Info("Model loaded", "kind", h.kind, "path", h.path, "variant", variant, "duration", time.Since(started))
		return
	}

	loadErr := &LoadError{Kind: h.kind, Path: h.path, Err: err}
	slog.Warn("Model artifact unavailable", "kind", h.kind, "path", h.path, "error", err)

	if fn, ok := r.fallbacks[h.kind]; ok && h.cfg.UseFallback() {
		fb, fbErr := fn(r.current(), h.cfg)
		if fbErr == nil {
			r.publish(h, &state{
				instance: fb,
				status:   StatusDegraded,
				variant:  VariantFallback,
				loadErr:  loadErr,
				loadedAt: time.Now(),
			})
			metrics.RecordModelLoad(string(h.kind), string(StatusDegraded), time.Since(started))
			slog.Warn("Backup model substituted", "kind", h.kind)
			return
		}
		slog.Error("Failed to build backup model", "kind", h.kind, "error", fbErr)
	}

	r.publish(h, &state{status: StatusFailed, variant: VariantUnavailable, loadErr: loadErr})
	metrics.RecordModelLoad(string(h.kind), string(StatusFailed), time.Since(started))
	slog.Error("Model failed to load", "kind", h.kind, "path", h.path, "error", err)
}

func (r *Registry) publish(h *Handle, s *state) {
	h.state.Store(s)
	metrics.RecordModelStatus(string(h.kind), string(s.status))
	r.notify(h.kind, s.status)
}

// decode reads the artifact once and hands the bytes to each decoder in turn.
func (r *Registry) decode(h *Handle) (backend.Backend, Variant, error) {
	ok, err := xfs.IsRegularFile(h.path)
	if err != nil {
		return nil, VariantUnavailable, fmt.Errorf("failed to stat artifact: %w", err)
	}
	if !ok {
		return nil, VariantUnavailable, ErrArtifactMissing
	}

	data, err := r.read(h.path)
	if err != nil {
		return nil, VariantUnavailable, fmt.Errorf("failed to read artifact: %w", err)
	}

	spec := backend.Spec{
		Name:    string(h.kind),
		Path:    h.path,
		Inputs:  h.cfg.Inputs,
		Outputs: h.cfg.Outputs,
		Labels:  h.cfg.Labels,
	}
	b, err := r.decoders.Decode(spec, data)
	if err != nil {
		return nil, VariantUnavailable, err
	}
	return b, variantOf(b), nil
}

func variantOf(b backend.Backend) Variant {
	switch b.Provider() {
	case backend.ProviderONNX:
		return VariantONNX
	case backend.ProviderFallback:
		return VariantFallback
	}
	if m, ok := b.(*ensemble.Model); ok && m.Form() == ensemble.FormRawWeights {
		return VariantRawWeights
	}
	return VariantEnsemble
}
