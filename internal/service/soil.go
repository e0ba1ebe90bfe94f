package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ekisa-team/plantx/internal/backend"
	"github.com/ekisa-team/plantx/internal/backend/ensemble"
	"github.com/ekisa-team/plantx/internal/config"
	"github.com/ekisa-team/plantx/internal/imaging"
	"github.com/ekisa-team/plantx/internal/knowledge"
	"github.com/ekisa-team/plantx/internal/model"
)

// SoilResult is the outcome of a soil type classification.
type SoilResult struct {
	Success     bool    `json:"success"`
	SoilType    string  `json:"soil_type,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	Predictions Ranking `json:"predictions,omitempty"`
	// Characteristics is the "Not available" record when the label is unknown.
	Characteristics      *knowledge.SoilCharacteristics `json:"characteristics,omitempty"`
	CharacteristicsFound bool                           `json:"characteristics_found"`
	Degraded             bool                           `json:"degraded"`
	Error                string                         `json:"error,omitempty"`
}

// Soil classifies soil type from photographs.
type Soil struct {
	engine
	soils *knowledge.Soils
}

// NewSoil creates a new Soil engine.
func NewSoil(models Models, soils *knowledge.Soils) *Soil {
	return &Soil{
		engine: engine{name: "soil", kind: model.KindSoil, models: models},
		soils:  soils,
	}
}

// AnalyzeFile classifies the image at path.
func (s *Soil) AnalyzeFile(ctx context.Context, path string) (*SoilResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return &SoilResult{Error: fmt.Errorf("%w: %w", ErrInference, err).Error()}, nil
	}
	defer f.Close()

	return s.Analyze(ctx, f)
}

// AnalyzeBytes classifies an encoded image.
func (s *Soil) AnalyzeBytes(ctx context.Context, data []byte) (*SoilResult, error) {
	return s.Analyze(ctx, bytes.NewReader(data))
}

// Analyze classifies an encoded image read from r. Every class is returned,
// sorted by descending confidence.
func (s *Soil) Analyze(ctx context.Context, r io.Reader) (*SoilResult, error) {
	started := time.Now()

	img, _, err := imaging.Decode(r)
	if err != nil {
		return s.failure(ctx, started, nil, fmt.Errorf("%w: %w", ErrInference, err))
	}

	h, err := s.models.Get(ctx, s.kind)
	if err != nil {
		return s.failure(ctx, started, h, err)
	}

	in := soilInput.with(h.Config().Image)
	t, err := imaging.Pack(img, in.size, in.layout, in.norm)
	if err != nil {
		return s.failure(ctx, started, h, fmt.Errorf("%w: %w", ErrInference, err))
	}

	resp, err := s.run(ctx, h, &backend.Request{Input: t.Data, Shape: t.Shape})
	if err != nil {
		return s.failure(ctx, started, h, err)
	}

	scores := toFloat64(resp.Output)
	if !isProbabilities(scores) {
		scores = ensemble.Softmax(scores)
	}

	labels := outputLabels(resp, h)
	if len(labels) == 0 {
		labels = config.SoilLabels
	}
	predictions := Rank(labels, scores, 0)
	for i := range predictions {
		predictions[i].Confidence *= 100
	}
	top := predictions[0]

	characteristics, err := s.soils.Lookup(top.Label)

	s.succeed(started, h)
	return &SoilResult{
		Success:              true,
		SoilType:             top.Label,
		Confidence:           top.Confidence,
		Predictions:          predictions,
		Characteristics:      &characteristics,
		CharacteristicsFound: err == nil,
		Degraded:             h.Fallback(),
	}, nil
}

func (s *Soil) failure(ctx context.Context, started time.Time, h *model.Handle, err error) (*SoilResult, error) {
	msg, ctxErr := s.fail(ctx, started, err)
	if ctxErr != nil {
		return nil, ctxErr
	}
	return &SoilResult{Error: msg, Degraded: h != nil && h.Fallback()}, nil
}
