package fallback

import (
	"github.com/ekisa-team/plantx/internal/features"
)

// riskRule adds Increment to the flood probability when Breached holds.
type riskRule struct {
	feature   string
	breached  func(v float64) bool
	increment float64
}

const (
	riskBase    = 0.2
	riskCeiling = 0.95
)

func riskRules() []riskRule {
	urban, _ := features.LandCovers.Code("Urban")
	clay, _ := features.FloodSoils.Code("Clay")

	return []riskRule{
		{"rainfall", func(v float64) bool { return v > 100 }, 0.2},
		{"river_discharge", func(v float64) bool { return v > 200 }, 0.15},
		{"historical_floods", func(v float64) bool { return v > 3 }, 0.1},
		{"elevation", func(v float64) bool { return v < 50 }, 0.15},
		{"water_level", func(v float64) bool { return v > 4 }, 0.2},
		{"land_cover", func(v float64) bool { return int(v) == urban }, 0.05},
		{"soil_type", func(v float64) bool { return int(v) == clay }, 0.05},
	}
}

// FloodProbability scores a risk vector with fixed threshold rules.
func FloodProbability(x []float64) float64 {
	p := riskBase
	for _, r := range riskRules() {
		i := features.RiskSchema.Index(r.feature)
		if i >= 0 && i < len(x) && r.breached(x[i]) {
			p += r.increment
		}
	}
	return min(p, riskCeiling)
}

// ProbabilityKey is the metadata key carrying the unrounded flood probability.
const ProbabilityKey = "probability"

// NewRisk returns the rule-based flood scorer. Output is [p(no risk), p(risk)];
// the float64 probability is also reported under ProbabilityKey.
func NewRisk(name string) *Predictor {
	return New(name, "flood_rules", len(features.RiskSchema), func(input []float32) ([]float32, error) {
		p := FloodProbability(widen(input))
		return []float32{float32(1 - p), float32(p)}, nil
	}).WithLabels([]string{"no_risk", "risk"}).WithDetails(func(input []float32) map[string]any {
		return map[string]any{ProbabilityKey: FloodProbability(widen(input))}
	})
}

func widen(input []float32) []float64 {
	x := make([]float64, len(input))
	for i, v := range input {
		x[i] = float64(v)
	}
	return x
}
