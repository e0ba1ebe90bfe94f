// Package service implements the inference engines: crop recommendation, yield
// prediction, flood risk, plant disease and soil type classification.
package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ekisa-team/plantx/internal/backend"
	"github.com/ekisa-team/plantx/internal/metrics"
	"github.com/ekisa-team/plantx/internal/model"
)

// Models resolves model handles by kind. *model.Registry implements it.
type Models interface {
	Get(ctx context.Context, kind model.Kind) (*model.Handle, error)
}

// Prediction is one labelled score. Confidence is a percentage for image
// classifiers and a probability otherwise.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Ranking is a list of predictions sorted by descending confidence.
type Ranking []Prediction

// Top returns the best prediction, or false when the ranking is empty.
func (r Ranking) Top() (Prediction, bool) {
	if len(r) == 0 {
		return Prediction{}, false
	}
	return r[0], true
}

// Rank pairs labels with scores, sorts them by descending score, drops repeated
// labels and keeps at most k entries. k <= 0 keeps every entry. Scores without a
// label are named after their index.
func Rank(labels []string, scores []float64, k int) Ranking {
	out := make(Ranking, len(scores))
	for i, s := range scores {
		label := fmt.Sprintf("class_%d", i)
		if i < len(labels) {
			label = labels[i]
		}
		out[i] = Prediction{Label: label, Confidence: s}
	}
	slices.SortStableFunc(out, func(a, b Prediction) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})

	seen := make(map[string]struct{}, len(out))
	ranked := out[:0]
	for _, p := range out {
		if _, ok := seen[p.Label]; ok {
			continue
		}
		seen[p.Label] = struct{}{}
		ranked = append(ranked, p)
	}
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// engine holds what every inference engine shares.
type engine struct {
	name   string
	kind   model.Kind
	models Models
}

// infer resolves the model and runs one forward pass.
func (e engine) infer(ctx context.Context, req *backend.Request) (*model.Handle, *backend.Response, error) {
	h, err := e.models.Get(ctx, e.kind)
	if err != nil {
		return h, nil, err
	}
	resp, err := e.run(ctx, h, req)
	return h, resp, err
}

func (e engine) run(ctx context.Context, h *model.Handle, req *backend.Request) (*backend.Response, error) {
	resp, err := h.Infer(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}
	if resp == nil || len(resp.Output) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInference, ErrEmptyOutput)
	}
	return resp, nil
}

// fail logs a failed request and returns the message for the result, or the
// context error when the caller went away.
func (e engine) fail(ctx context.Context, started time.Time, err error) (string, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		metrics.RecordInference(e.name, "error", time.Since(started))
		return "", ctxErr
	}
	slog.Warn("Inference failed", "engine", e.name, "kind", e.kind, "error", err)
	metrics.RecordInference(e.name, "error", time.Since(started))
	return err.Error(), nil
}

func (e engine) reject(started time.Time, err error) error {
	slog.Debug("Request rejected", "engine", e.name, "error", err)
	metrics.RecordInference(e.name, "rejected", time.Since(started))
	return err
}

func (e engine) succeed(started time.Time, h *model.Handle) {
	metrics.RecordInference(e.name, "success", time.Since(started))
	slog.Debug("Inference completed", "engine", e.name, "variant", h.Variant(), "duration", time.Since(started))
}

// outputLabels returns the class names of resp: those reported by the backend,
// else those configured for the model.
func outputLabels(resp *backend.Response, h *model.Handle) []string {
	if resp.Metadata != nil {
		if labels, ok := resp.Metadata.BackendSpecific["labels"].([]string); ok && len(labels) > 0 {
			return labels
		}
	}
	return h.Config().Labels
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

func argmax(v []float64) int {
	best := 0
	for i, x := range v {
		if x > v[best] {
			best = i
		}
	}
	return best
}

// isProbabilities reports whether v already sums to one.
func isProbabilities(v []float64) bool {
	var total float64
	for _, x := range v {
		if x < 0 {
			return false
		}
		total += x
	}
	return total > 0.999 && total < 1.001
}

func joinNonEmpty(parts []string, sep string) string {
	return strings.Join(slices.DeleteFunc(slices.Clone(parts), func(s string) bool { return s == "" }), sep)
}
