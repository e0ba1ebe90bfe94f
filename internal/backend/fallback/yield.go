package fallback

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/ekisa-team/plantx/internal/backend/ensemble"
	"github.com/ekisa-team/plantx/internal/features"
	"github.com/ekisa-team/plantx/internal/knowledge"
)

const (
	yieldSamples = 400
	yieldRounds  = 100
)

// cropScale is the synthetic magnitude of a crop relative to a 2 t/ha staple.
func cropScale(crop string) float64 {
	switch base := knowledge.BaseYield(crop); {
	case base >= 9:
		return 10
	case base < 1:
		return 0.5
	default:
		return 1
	}
}

// SyntheticYieldData draws a reproducible training set over the yield schema.
func SyntheticYieldData(n int, seed uint64) ([][]float64, []float64) {
	rng := rand.New(rand.NewPCG(seed, seed))
	crops := features.Crops.Names()

	x := make([][]float64, n)
	y := make([]float64, n)
	for i := range n {
		cropID := rng.IntN(len(crops))
		temp := 15 + rng.Float64()*25
		rain := 300 + rng.Float64()*2700
		row := []float64{
			float64(cropID),
			float64(rng.IntN(features.States.Len())),
			1 + rng.Float64()*99,
			rng.Float64() * 5000,
			temp,
			30 + rng.Float64()*65,
			rain,
			4.5 + rng.Float64()*4,
			0.1 + rng.Float64()*2.4,
		}
		x[i] = row
		y[i] = 2 * cropScale(crops[cropID]) *
			(0.8 + 0.4*min(rain/1500, 1)) *
			(1 - math.Abs(temp-25)/50)
	}
	return x, y
}

// FitYield fits a gradient-boosted stump ensemble with the given number of
// rounds on synthetic data.
func FitYield(rounds int, seed uint64) (*ensemble.Ensemble, error) {
	x, y := SyntheticYieldData(yieldSamples, seed)
	e, err := ensemble.FitStumps(x, y, ensemble.FitOptions{Rounds: rounds, LearningRate: 0.1})
	if err != nil {
		return nil, fmt.Errorf("failed to fit backup yield model: %w", err)
	}
	return e, nil
}

// YieldBase returns base estimators for yield artifacts that carry only
// estimator weights. Fitted ensembles are cached per size.
func YieldBase(seed uint64) ensemble.BaseFunc {
	var mu sync.Mutex
	cache := make(map[int]*ensemble.Ensemble)

	return func(n int) (*ensemble.Ensemble, error) {
		mu.Lock()
		defer mu.Unlock()

		if e, ok := cache[n]; ok {
			return e, nil
		}
		e, err := FitYield(n, seed)
		if err != nil {
			return nil, err
		}
		if len(e.Trees) < n {
			return nil, fmt.Errorf("fitted %d base estimators, need %d", len(e.Trees), n)
		}
		cache[n] = e
		return e, nil
	}
}

// NewYield fits the backup yield regressor.
func NewYield(name string, seed uint64) (*Predictor, error) {
	e, err := FitYield(yieldRounds, seed)
	if err != nil {
		return nil, err
	}

	return New(name, "synthetic_stumps", len(features.YieldSchema), func(input []float32) ([]float32, error) {
		x := make([]float64, len(input))
		for i, v := range input {
			x[i] = float64(v)
		}
		y, err := e.Predict(x)
		if err != nil {
			return nil, err
		}
		return []float32{float32(y[0])}, nil
	}), nil
}
