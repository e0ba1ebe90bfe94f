package fallback

import (
	"math"
	"math/rand/v2"

	"github.com/ekisa-team/plantx/internal/imaging"
)

// SoilLabels is the class order of soil confidences.
var SoilLabels = []string{"Clay", "Loamy", "Sandy", "Silty", "Peaty", "Chalky"}

type colourBand struct {
	match func(r, g, b float64) bool
	base  [6]float64
}

// colourBands are checked in order; the last entry always matches.
var colourBands = []colourBand{
	// Dark brown.
	{func(r, g, b float64) bool { return r < 0.5 && g < 0.4 && b < 0.4 }, [6]float64{65, 15, 5, 5, 5, 5}},
	// Light brown or beige.
	{func(r, g, b float64) bool { return r > 0.5 && g > 0.4 && b < 0.4 }, [6]float64{10, 15, 55, 10, 5, 5}},
	// Dark with a red tint.
	{func(r, g, b float64) bool { return r > 0.4 && g < 0.4 && r > g }, [6]float64{15, 55, 15, 5, 5, 5}},
	// Grey.
	{func(r, g, b float64) bool { return math.Abs(r-g) < 0.1 && math.Abs(g-b) < 0.1 }, [6]float64{10, 10, 15, 55, 5, 5}},
	// Very dark, organic.
	{func(r, g, b float64) bool { return r < 0.3 && g < 0.3 && b < 0.3 }, [6]float64{10, 15, 5, 10, 55, 5}},
	// Pale.
	{func(r, g, b float64) bool { return r > 0.6 && g > 0.6 && b > 0.6 }, [6]float64{5, 5, 10, 15, 5, 60}},
	{func(r, g, b float64) bool { return true }, [6]float64{25, 35, 20, 10, 5, 5}},
}

// SoilConfidences estimates soil class percentages from mean channel values in
// [0, 1]. The same colour always gives the same answer.
func SoilConfidences(mean [3]float64) [6]float64 {
	r, g, b := mean[0], mean[1], mean[2]

	var base [6]float64
	for _, band := range colourBands {
		if band.match(r, g, b) {
			base = band.base
			break
		}
	}

	seed := int64((r + g + b) * 255)
	rng := rand.New(rand.NewPCG(uint64(seed), 0))

	var total float64
	for i := range base {
		base[i] = max(1, base[i]+rng.Float64()*10-5)
		total += base[i]
	}
	for i := range base {
		base[i] = base[i] * 100 / total
	}
	return base
}

// NewSoil returns the colour heuristic. Input is an image tensor in [0, 1];
// output is one probability per SoilLabels entry.
func NewSoil(name string, layout imaging.Layout) *Predictor {
	return New(name, "soil_colour", 0, func(input []float32) ([]float32, error) {
		mean, err := imaging.ChannelMeans(input, layout)
		if err != nil {
			return nil, err
		}
		conf := SoilConfidences(mean)
		out := make([]float32, len(conf))
		for i, c := range conf {
			out[i] = float32(c / 100)
		}
		return out, nil
	}).WithLabels(SoilLabels)
}
