package model

import (
	"github.com/ekisa-team/plantx/internal/backend"
	"github.com/ekisa-team/plantx/internal/backend/ensemble"
	"github.com/ekisa-team/plantx/internal/backend/fallback"
	"github.com/ekisa-team/plantx/internal/backend/onnx"
	"github.com/ekisa-team/plantx/internal/config"
	"github.com/ekisa-team/plantx/internal/imaging"
)

// DefaultDecoders returns the artifact decoders in priority order: ONNX graphs
// first, then protobuf Value ensembles.
func DefaultDecoders(cfg *config.Config) (*backend.Registry, error) {
	reg := backend.NewRegistry()
	if err := reg.Register(onnx.NewDecoder(cfg.Runtime.ONNXLibrary)); err != nil {
		return nil, err
	}

	ens := ensemble.NewDecoder()
	ens.SetBase(string(KindYield), fallback.YieldBase(uint64(cfg.Yield.Seed)))
	if err := reg.Register(ens); err != nil {
		return nil, err
	}
	return reg, nil
}

// DefaultFallbacks returns options installing the backup model of every kind
// that has one. The disease classifier has none. Settings are read when each
// backup is built, so a reloaded configuration applies to the next load.
func DefaultFallbacks() []Option {
	return []Option{
		WithFallback(KindCrop, func(*config.Config, config.ModelConfig) (backend.Backend, error) {
			return fallback.NewCrop(string(KindCrop)), nil
		}),
		WithFallback(KindYield, func(cfg *config.Config, _ config.ModelConfig) (backend.Backend, error) {
			p, err := fallback.NewYield(string(KindYield), uint64(cfg.Yield.Seed))
			if err != nil {
				return nil, err
			}
			return p, nil
		}),
		WithFallback(KindRisk, func(*config.Config, config.ModelConfig) (backend.Backend, error) {
			return fallback.NewRisk(string(KindRisk)), nil
		}),
		WithFallback(KindSoil, func(_ *config.Config, mc config.ModelConfig) (backend.Backend, error) {
			return fallback.NewSoil(string(KindSoil), SoilLayout(mc)), nil
		}),
	}
}

// SoilLayout returns the tensor layout the soil model is fed, NHWC unless the
// model's image settings name another.
func SoilLayout(mc config.ModelConfig) imaging.Layout {
	if mc.Image != nil {
		if l, err := imaging.ParseLayout(mc.Image.Layout); err == nil {
			return l
		}
	}
	return imaging.NHWC
}
