package service

import (
	"github.com/ekisa-team/plantx/internal/config"
	"github.com/ekisa-team/plantx/internal/imaging"
)

// imageInput describes the tensor an image model expects.
type imageInput struct {
	size   int
	layout imaging.Layout
	norm   imaging.Normalization
}

var (
	diseaseInput = imageInput{
		size:   224,
		layout: imaging.NCHW,
		norm: imaging.Normalization{
			Mean: [3]float32{0.5, 0.5, 0.5},
			Std:  [3]float32{0.5, 0.5, 0.5},
		},
	}

	soilInput = imageInput{size: 224, layout: imaging.NHWC, norm: imaging.UnitRange}
)

// with overlays the configured image settings onto in.
func (in imageInput) with(cfg *config.ImageConfig) imageInput {
	if cfg == nil {
		return in
	}
	if cfg.Size > 0 {
		in.size = cfg.Size
	}
	if l, err := imaging.ParseLayout(cfg.Layout); err == nil {
		in.layout = l
	}
	if len(cfg.Mean) == 3 {
		copy(in.norm.Mean[:], cfg.Mean)
	}
	if len(cfg.Std) == 3 {
		copy(in.norm.Std[:], cfg.Std)
	}
	return in
}
