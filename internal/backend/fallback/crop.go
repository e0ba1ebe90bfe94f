package fallback

import (
	"math"

	"github.com/ekisa-team/plantx/internal/backend/ensemble"
	"github.com/ekisa-team/plantx/internal/features"
	"github.com/ekisa-team/plantx/internal/knowledge"
)

// CropScores returns a softmax over negative scaled distances from x to each
// crop profile. Each feature is scaled by its spread across the profiles.
func CropScores(x []float64, profiles []knowledge.CropProfile) []float64 {
	if len(profiles) == 0 {
		return nil
	}

	width := len(profiles[0].Features())
	lo := make([]float64, width)
	hi := make([]float64, width)
	for i := range width {
		lo[i], hi[i] = math.Inf(1), math.Inf(-1)
	}
	for _, p := range profiles {
		for i, v := range p.Features() {
			lo[i] = min(lo[i], v)
			hi[i] = max(hi[i], v)
		}
	}

	scores := make([]float64, len(profiles))
	for j, p := range profiles {
		var d float64
		for i, c := range p.Features() {
			span := hi[i] - lo[i]
			if span == 0 || i >= len(x) {
				continue
			}
			diff := (x[i] - c) / span
			d += diff * diff
		}
		scores[j] = -math.Sqrt(d)
	}

	// Sharpen so the nearest centroid dominates.
	for j := range scores {
		scores[j] *= 10
	}
	return ensemble.Softmax(scores)
}

// NewCrop returns the nearest-centroid crop recommender over the built-in profiles.
func NewCrop(name string) *Predictor {
	profiles := knowledge.CropProfiles()
	labels := make([]string, len(profiles))
	for i, p := range profiles {
		labels[i] = p.Name
	}

	return New(name, "crop_centroids", len(features.CropSchema), func(input []float32) ([]float32, error) {
		x := make([]float64, len(input))
		for i, v := range input {
			x[i] = float64(v)
		}
		scores := CropScores(x, profiles)
		out := make([]float32, len(scores))
		for i, s := range scores {
			out[i] = float32(s)
		}
		return out, nil
	}).WithLabels(labels)
}
