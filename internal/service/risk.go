package service

import (
	"context"
	"math"
	"time"

	"github.com/ekisa-team/plantx/internal/backend"
	"github.com/ekisa-team/plantx/internal/backend/fallback"
	"github.com/ekisa-team/plantx/internal/features"
	"github.com/ekisa-team/plantx/internal/model"
)

// RiskLevel buckets a flood probability.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// Probabilities above riskThreshold are at risk; above moderateThreshold they
// are Moderate.
const (
	riskThreshold     = 0.5
	moderateThreshold = 0.3
)

var recommendations = map[RiskLevel][]string{
	RiskHigh: {
		"Move livestock, seed stock and equipment to higher ground",
		"Clear drainage channels and field outlets before the next rainfall",
		"Delay sowing and fertiliser application until water levels recede",
		"Harvest mature crops early where possible",
		"Follow local disaster management advisories",
	},
	RiskModerate: {
		"Inspect bunds, embankments and drainage for weak points",
		"Prefer flood tolerant varieties for the coming season",
		"Keep emergency supplies and contacts ready",
		"Monitor rainfall and river level forecasts daily",
	},
	RiskLow: {
		"Continue normal field operations",
		"Maintain drainage infrastructure",
		"Review weather forecasts weekly",
	},
}

// BucketRisk classifies p. Boundaries are exclusive: 0.5 is Moderate and 0.3 is Low.
func BucketRisk(p float64) RiskLevel {
	switch {
	case p > riskThreshold:
		return RiskHigh
	case p > moderateThreshold:
		return RiskModerate
	default:
		return RiskLow
	}
}

// bucketRisk32 classifies a single precision model output at that precision,
// so an emitted 0.3 or 0.5 stays on the lower side of its boundary.
func bucketRisk32(p float32) RiskLevel {
	switch {
	case p > float32(riskThreshold):
		return RiskHigh
	case p > float32(moderateThreshold):
		return RiskModerate
	default:
		return RiskLow
	}
}

// riskProbability returns p(risk) from a two-value output. Backends that report
// an exact float64 probability in metadata take precedence over the tensor.
func riskProbability(resp *backend.Response) (float64, RiskLevel) {
	if resp.Metadata != nil {
		if p, ok := resp.Metadata.BackendSpecific[fallback.ProbabilityKey].(float64); ok {
			return p, BucketRisk(p)
		}
	}
	p := resp.Output[1]
	return float64(p), bucketRisk32(p)
}

// Recommendations returns the fixed advice for level.
func Recommendations(level RiskLevel) []string {
	return append([]string(nil), recommendations[level]...)
}

// RiskResult is the outcome of a flood risk assessment.
type RiskResult struct {
	Success bool `json:"success"`
	AtRisk  bool `json:"at_risk"`
	// Probability is absent when the model reports a class without a probability.
	Probability     *float64  `json:"probability,omitempty"`
	Level           RiskLevel `json:"level,omitempty"`
	Label           string    `json:"label,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
	Degraded        bool      `json:"degraded"`
	Error           string    `json:"error,omitempty"`
}

// Risk assesses flood risk for a location.
type Risk struct {
	engine
	normalizer *features.Normalizer
}

// NewRisk creates a new Risk engine.
func NewRisk(models Models, normalizer *features.Normalizer) *Risk {
	return &Risk{
		engine:     engine{name: "risk", kind: model.KindRisk, models: models},
		normalizer: normalizer,
	}
}

// Assess classifies flood risk. The model output is either [p(no), p(yes)] or a
// single class value.
func (r *Risk) Assess(ctx context.Context, in features.RiskInput) (*RiskResult, error) {
	started := time.Now()

	v, err := r.normalizer.Risk(in)
	if err != nil {
		return nil, r.reject(started, err)
	}

	h, resp, err := r.infer(ctx, backend.NewRequest(v.Float32()))
	if err != nil {
		msg, ctxErr := r.fail(ctx, started, err)
		if ctxErr != nil {
			return nil, ctxErr
		}
		return &RiskResult{Error: msg, Degraded: h != nil && h.Fallback()}, nil
	}

	result := &RiskResult{Success: true, Degraded: h.Fallback()}
	if len(resp.Output) >= 2 {
		p, level := riskProbability(resp)
		result.Probability = &p
		result.AtRisk = level == RiskHigh
		result.Level = level
	} else {
		result.AtRisk = math.Round(float64(resp.Output[0])) == 1
		result.Level = RiskLow
		if result.AtRisk {
			result.Level = RiskHigh
		}
	}
	result.Label = string(result.Level) + " Risk"
	result.Recommendations = Recommendations(result.Level)

	r.succeed(started, h)
	return result, nil
}
