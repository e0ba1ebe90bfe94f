package service

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ekisa-team/plantx/internal/backend"
	"github.com/ekisa-team/plantx/internal/features"
	"github.com/ekisa-team/plantx/internal/knowledge"
	"github.com/ekisa-team/plantx/internal/model"
)

const (
	// implausibleYield is the raw prediction below which the model signal is
	// replaced by the crop's base yield.
	implausibleYield = 0.1

	// floorShare is the fraction of base yield no prediction may fall below.
	floorShare = 0.3
)

// YieldFactors are the agronomic multipliers applied to the model signal.
type YieldFactors struct {
	Temperature   float64 `json:"temperature"`
	Rainfall      float64 `json:"rainfall"`
	PH            float64 `json:"ph"`
	OrganicCarbon float64 `json:"organic_carbon"`
	Area          float64 `json:"area"`
	StateBonus    float64 `json:"state_bonus"`
}

// Product returns the combined adjustment.
func (f YieldFactors) Product() float64 {
	return f.Temperature * f.Rainfall * f.PH * f.OrganicCarbon * f.Area * f.StateBonus
}

// ComputeFactors derives the adjustment factors for one field.
func ComputeFactors(temperature, rainfall, ph, organicCarbon, area float64, suited bool) YieldFactors {
	f := YieldFactors{
		Temperature:   1 - math.Min(math.Abs(temperature-25)/15, 0.3),
		Rainfall:      math.Min(rainfall/1000, 1.3),
		PH:            1 - math.Min(math.Abs(ph-6.5)/3, 0.2),
		OrganicCarbon: math.Min(1+organicCarbon/20, 1.3),
		Area:          1,
		StateBonus:    1,
	}
	if area > 10 {
		f.Area = 0.9
	}
	if suited {
		f.StateBonus = 1.2
	}
	return f
}

// AdjustYield turns a raw model prediction into a yield in tons per hectare.
// Backup models and implausibly small predictions are replaced by the crop's
// base yield. randomFactor scales the result and is 1 for real models.
func AdjustYield(raw float64, profile knowledge.YieldProfile, state string, f YieldFactors, backup bool, randomFactor float64) float64 {
	signal := raw
	if backup || raw < implausibleYield {
		signal = profile.BaseYield
	}

	y := signal * f.Product() * randomFactor
	if profile.Cap != nil {
		y = profile.Cap.Clamp(y * profile.Cap.BonusFor(state))
	}
	return math.Max(y, floorShare*profile.BaseYield)
}

// YieldResult is the outcome of a yield prediction.
type YieldResult struct {
	Success       bool                      `json:"success"`
	Crop          string                    `json:"crop"`
	State         string                    `json:"state"`
	Yield         float64                   `json:"yield"`
	RawPrediction float64                   `json:"raw_prediction"`
	Adjustment    float64                   `json:"adjustment"`
	RandomFactor  float64                   `json:"random_factor"`
	Factors       YieldFactors              `json:"factors"`
	Level         string                    `json:"level,omitempty"`
	Thresholds    knowledge.YieldThresholds `json:"thresholds"`
	Degraded      bool                      `json:"degraded"`
	Error         string                    `json:"error,omitempty"`
}

// YieldOption configures a Yield engine.
type YieldOption func(*Yield)

// WithYieldRand enables the random factor in [0.95, 1.05] applied to backup
// model predictions, drawn from a generator seeded with seed.
func WithYieldRand(seed int64) YieldOption {
	return func(y *Yield) {
		y.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	}
}

// Yield predicts crop yield in tons per hectare.
type Yield struct {
	engine
	normalizer *features.Normalizer

	mu  sync.Mutex
	rng *rand.Rand
}

// NewYield creates a new Yield engine.
func NewYield(models Models, normalizer *features.Normalizer, opts ...YieldOption) *Yield {
	y := &Yield{
		engine:     engine{name: "yield", kind: model.KindYield, models: models},
		normalizer: normalizer,
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

func (y *Yield) randomFactor() float64 {
	if y.rng == nil {
		return 1
	}
	y.mu.Lock()
	defer y.mu.Unlock()
	return 0.95 + y.rng.Float64()*0.1
}

// Predict estimates the yield of a crop in a state.
func (y *Yield) Predict(ctx context.Context, in features.YieldInput) (*YieldResult, error) {
	started := time.Now()

	v, err := y.normalizer.Yield(in)
	if err != nil {
		return nil, y.reject(started, err)
	}
	crop, _ := features.Crops.Canonical(in.Crop)
	state, _ := features.States.Canonical(in.State)

	profile := knowledge.YieldProfileFor(crop)
	factors := ComputeFactors(
		in.Temperature,
		in.Rainfall,
		v.Must("soil_pH"),
		v.Must("organic_carbon"),
		in.Area,
		profile.Suited(state),
	)
	result := &YieldResult{
		Crop:       crop,
		State:      state,
		Factors:    factors,
		Adjustment: factors.Product(),
		Thresholds: profile.Thresholds,
	}

	h, resp, err := y.infer(ctx, backend.NewRequest(v.Float32()))
	if err != nil {
		msg, ctxErr := y.fail(ctx, started, err)
		if ctxErr != nil {
			return nil, ctxErr
		}
		result.Error = msg
		result.Degraded = h != nil && h.Fallback()
		return result, nil
	}

	backup := h.Fallback()
	rf := 1.0
	if backup {
		rf = y.randomFactor()
	}

	result.Success = true
	result.Degraded = backup
	result.RawPrediction = float64(resp.Output[0])
	result.RandomFactor = rf
	result.Yield = AdjustYield(result.RawPrediction, profile, state, factors, backup, rf)
	result.Level = profile.Thresholds.Level(result.Yield)

	y.succeed(started, h)
	return result, nil
}
