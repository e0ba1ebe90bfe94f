package fallback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/plantx/internal/backend"
	"github.com/ekisa-team/plantx/internal/features"
	"github.com/ekisa-team/plantx/internal/imaging"
)

func riskVector(t *testing.T, in features.RiskInput) []float32 {
	t.Helper()
	v, err := features.NewNormalizer().Risk(in)
	require.NoError(t, err)
	return v.Float32()
}

func TestRisk_AllThresholdsBreached(t *testing.T) {
	p := NewRisk("risk_classifier")

	resp, err := p.Infer(context.Background(), backend.NewRequest(riskVector(t, features.RiskInput{
		Rainfall:         150,
		RiverDischarge:   250,
		HistoricalFloods: 5,
		Elevation:        30,
		WaterLevel:       5,
		LandCover:        "Urban",
		SoilType:         "Clay",
	})))
	require.NoError(t, err)
	require.Len(t, resp.Output, 2)
	assert.InDelta(t, 0.95, resp.Output[1], 1e-6)
	assert.Equal(t, backend.ProviderFallback, resp.Metadata.Provider)
	assert.Equal(t, "flood_rules", resp.Metadata.BackendSpecific["strategy"])
}

func TestRisk_NothingBreached(t *testing.T) {
	p := NewRisk("risk_classifier")

	resp, err := p.Infer(context.Background(), backend.NewRequest(riskVector(t, features.RiskInput{
		Rainfall:         100,
		RiverDischarge:   200,
		HistoricalFloods: 3,
		Elevation:        50,
		WaterLevel:       4,
		LandCover:        "Forest",
		SoilType:         "Loam",
	})))
	require.NoError(t, err)
	assert.InDelta(t, 0.2, resp.Output[1], 1e-6)
	assert.InDelta(t, 0.8, resp.Output[0], 1e-6)
}

func TestRisk_ReportsExactProbability(t *testing.T) {
	p := NewRisk("risk_classifier")

	resp, err := p.Infer(context.Background(), backend.NewRequest(riskVector(t, features.RiskInput{
		Elevation: 100,
		LandCover: "Urban",
		SoilType:  "Clay",
	})))
	require.NoError(t, err)

	exact, ok := resp.Metadata.BackendSpecific[ProbabilityKey].(float64)
	require.True(t, ok)
	assert.Equal(t, 0.2+0.05+0.05, exact)
	assert.False(t, exact > 0.3)
	assert.Equal(t, float32(exact), resp.Output[1])
}

func TestRisk_RejectsWrongWidth(t *testing.T) {
	_, err := NewRisk("risk_classifier").Infer(context.Background(), backend.NewRequest([]float32{1, 2}))
	require.ErrorIs(t, err, backend.ErrInvalidInput)
}

func TestSoilConfidences_Deterministic(t *testing.T) {
	mean := [3]float64{0.3, 0.2, 0.15}

	a := SoilConfidences(mean)
	b := SoilConfidences(mean)
	assert.Equal(t, a, b)

	var total float64
	for _, c := range a {
		assert.Greater(t, c, 0.0)
		total += c
	}
	assert.InDelta(t, 100, total, 1e-9)
}

func TestSoilConfidences_Bands(t *testing.T) {
	tests := []struct {
		name string
		mean [3]float64
		want int
	}{
		{"dark brown is clay", [3]float64{0.35, 0.25, 0.2}, 0},
		{"beige is sandy", [3]float64{0.8, 0.6, 0.3}, 2},
		{"red tint is loamy", [3]float64{0.6, 0.3, 0.5}, 1},
		{"grey is silty", [3]float64{0.55, 0.5, 0.5}, 3},
		{"pale is chalky", [3]float64{0.9, 0.95, 0.7}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := SoilConfidences(tt.mean)
			best := 0
			for i, c := range conf {
				if c > conf[best] {
					best = i
				}
			}
			assert.Equal(t, tt.want, best, SoilLabels[best])
		})
	}
}

func TestNewSoil_Infer(t *testing.T) {
	p := NewSoil("soil_classifier", imaging.NHWC)

	input := make([]float32, 4*4*3)
	for i := range input {
		input[i] = 0.5
	}
	resp, err := p.Infer(context.Background(), &backend.Request{Input: input, Shape: []int64{1, 4, 4, 3}})
	require.NoError(t, err)
	require.Len(t, resp.Output, 6)

	var total float32
	for _, v := range resp.Output {
		total += v
	}
	assert.InDelta(t, 1, total, 1e-5)
	assert.Equal(t, SoilLabels, resp.Metadata.BackendSpecific["labels"])
}

func TestNewCrop_NearestCentroid(t *testing.T) {
	p := NewCrop("crop_classifier")

	resp, err := p.Infer(context.Background(), backend.NewRequest([]float32{80, 48, 40, 23.7, 82, 6.4, 236}))
	require.NoError(t, err)

	labels := resp.Metadata.BackendSpecific["labels"].([]string)
	best := 0
	for i, v := range resp.Output {
		if v > resp.Output[best] {
			best = i
		}
	}
	assert.Equal(t, "rice", labels[best])
}

func TestFitYield_Reproducible(t *testing.T) {
	a, err := FitYield(20, 42)
	require.NoError(t, err)
	b, err := FitYield(20, 42)
	require.NoError(t, err)

	x := []float64{34, 13, 2, 100, 25, 80, 1200, 6.5, 1.2}
	ya, err := a.Predict(x)
	require.NoError(t, err)
	yb, err := b.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, ya, yb)
}

func TestNewYield_ScalesWithCrop(t *testing.T) {
	p, err := NewYield("yield_regressor", 42)
	require.NoError(t, err)

	sugarcane, _ := features.Crops.Code("Sugarcane")
	cardamom, _ := features.Crops.Code("Cardamom")
	row := func(crop int) []float32 {
		return []float32{float32(crop), 13, 2, 100, 25, 80, 1500, 6.5, 1.2}
	}

	hi, err := p.Infer(context.Background(), backend.NewRequest(row(sugarcane)))
	require.NoError(t, err)
	lo, err := p.Infer(context.Background(), backend.NewRequest(row(cardamom)))
	require.NoError(t, err)
	assert.Greater(t, hi.Output[0], lo.Output[0])
}

func TestYieldBase_CachesBySize(t *testing.T) {
	fn := YieldBase(7)

	a, err := fn(5)
	require.NoError(t, err)
	b, err := fn(5)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Len(t, a.Trees, 5)
}

func TestPredictor_Close(t *testing.T) {
	p := NewRisk("risk_classifier")
	require.NoError(t, p.Close())

	_, err := p.Infer(context.Background(), backend.NewRequest(make([]float32, 13)))
	require.ErrorIs(t, err, backend.ErrClosed)
}
