package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ekisa-team/plantx/internal/backend"
	"github.com/ekisa-team/plantx/internal/features"
	"github.com/ekisa-team/plantx/internal/model"
)

// CropResult is the outcome of a crop recommendation.
type CropResult struct {
	Success bool   `json:"success"`
	Crop    string `json:"crop,omitempty"`
	// Candidates holds the best scoring crops when the model reports probabilities.
	Candidates Ranking `json:"candidates,omitempty"`
	Degraded   bool    `json:"degraded"`
	Error      string  `json:"error,omitempty"`
}

// Crop recommends a crop from soil nutrients and climate.
type Crop struct {
	engine
	normalizer *features.Normalizer
}

// NewCrop creates a new Crop engine.
func NewCrop(models Models, normalizer *features.Normalizer) *Crop {
	return &Crop{
		engine:     engine{name: "crop", kind: model.KindCrop, models: models},
		normalizer: normalizer,
	}
}

// Recommend returns the single best crop, capitalised for display.
func (c *Crop) Recommend(ctx context.Context, in features.CropInput) (*CropResult, error) {
	started := time.Now()

	v, err := c.normalizer.Crop(in)
	if err != nil {
		return nil, c.reject(started, err)
	}

	h, resp, err := c.infer(ctx, backend.NewRequest(v.Float32()))
	if err != nil {
		msg, ctxErr := c.fail(ctx, started, err)
		if ctxErr != nil {
			return nil, ctxErr
		}
		return &CropResult{Error: msg, Degraded: h != nil && h.Fallback()}, nil
	}

	labels := outputLabels(resp, h)
	out := toFloat64(resp.Output)

	var (
		label      string
		candidates Ranking
	)
	if len(out) == 1 {
		// A single class index.
		idx := int(math.Round(out[0]))
		if idx < 0 || idx >= len(labels) {
			msg, _ := c.fail(ctx, started, fmt.Errorf("%w: class %d outside %d labels", ErrInference, idx, len(labels)))
			return &CropResult{Error: msg, Degraded: h.Fallback()}, nil
		}
		label = labels[idx]
	} else {
		candidates = Rank(labels, out, 3)
		for i := range candidates {
			candidates[i].Label = Capitalize(candidates[i].Label)
		}
		label = candidates[0].Label
	}

	c.succeed(started, h)
	return &CropResult{
		Success:    true,
		Crop:       Capitalize(label),
		Candidates: candidates,
		Degraded:   h.Fallback(),
	}, nil
}
