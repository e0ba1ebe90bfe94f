package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ekisa-team/plantx/internal/backend"
	"github.com/ekisa-team/plantx/internal/backend/ensemble"
	"github.com/ekisa-team/plantx/internal/imaging"
	"github.com/ekisa-team/plantx/internal/knowledge"
	"github.com/ekisa-team/plantx/internal/model"
)

// NoTreatmentMessage is reported when no treatment record matches a diagnosis.
const NoTreatmentMessage = "No specific treatment information available"

// FormatDiseaseLabel turns a class name such as "Tomato_Late_blight" into
// "Tomato - Late blight". Names without an underscore are returned unchanged.
func FormatDiseaseLabel(raw string) string {
	plant, rest, ok := strings.Cut(raw, "_")
	if !ok {
		return raw
	}
	disease := joinNonEmpty(strings.Split(rest, "_"), " ")
	if disease == "" {
		return plant
	}
	return plant + " - " + Capitalize(disease)
}

// DiseaseResult is the outcome of a plant disease diagnosis.
type DiseaseResult struct {
	Success     bool    `json:"success"`
	Disease     string  `json:"disease,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	Predictions Ranking `json:"predictions,omitempty"`
	// Treatment is nil when no record matches; TreatmentMessage then says so.
	Treatment        *knowledge.Treatment `json:"treatment,omitempty"`
	TreatmentMessage string               `json:"treatment_message,omitempty"`
	Error            string               `json:"error,omitempty"`
}

// Disease diagnoses plant diseases from leaf images.
type Disease struct {
	engine
	treatments *knowledge.Treatments
	topK       int
}

// NewDisease creates a new Disease engine.
func NewDisease(models Models, treatments *knowledge.Treatments) *Disease {
	return &Disease{
		engine:     engine{name: "disease", kind: model.KindDisease, models: models},
		treatments: treatments,
		topK:       3,
	}
}

// ClassifyFile diagnoses the image at path.
func (d *Disease) ClassifyFile(ctx context.Context, path string) (*DiseaseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return &DiseaseResult{Error: fmt.Errorf("%w: %w", ErrInference, err).Error()}, nil
	}
	defer f.Close()

	return d.Classify(ctx, f)
}

// ClassifyBytes diagnoses an encoded image.
func (d *Disease) ClassifyBytes(ctx context.Context, data []byte) (*DiseaseResult, error) {
	return d.Classify(ctx, bytes.NewReader(data))
}

// Classify diagnoses an encoded image read from r.
func (d *Disease) Classify(ctx context.Context, r io.Reader) (*DiseaseResult, error) {
	started := time.Now()

	img, _, err := imaging.Decode(r)
	if err != nil {
		return d.failure(ctx, started, fmt.Errorf("%w: %w", ErrInference, err))
	}

	h, err := d.models.Get(ctx, d.kind)
	if err != nil {
		return d.failure(ctx, started, err)
	}

	resp, err := d.forward(ctx, h, img)
	if err != nil {
		return d.failure(ctx, started, err)
	}

	scores := toFloat64(resp.Output)
	if !isProbabilities(scores) {
		scores = ensemble.Softmax(scores)
	}

	predictions := Rank(formatLabels(outputLabels(resp, h)), scores, d.topK)
	for i := range predictions {
		predictions[i].Confidence *= 100
	}
	top := predictions[0]

	result := &DiseaseResult{
		Success:     true,
		Disease:     top.Label,
		Confidence:  top.Confidence,
		Predictions: predictions,
	}

	if treatment, err := d.treatments.Lookup(top.Label); err == nil {
		result.Treatment = &treatment
	} else {
		slog.Debug("No treatment record", "label", top.Label, "error", err)
		result.TreatmentMessage = NoTreatmentMessage
	}

	d.succeed(started, h)
	return result, nil
}

func (d *Disease) forward(ctx context.Context, h *model.Handle, img image.Image) (*backend.Response, error) {
	in := diseaseInput.with(h.Config().Image)
	t, err := imaging.Pack(img, in.size, in.layout, in.norm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}
	return d.run(ctx, h, &backend.Request{Input: t.Data, Shape: t.Shape})
}

func (d *Disease) failure(ctx context.Context, started time.Time, err error) (*DiseaseResult, error) {
	msg, ctxErr := d.fail(ctx, started, err)
	if ctxErr != nil {
		return nil, ctxErr
	}
	return &DiseaseResult{Error: msg}, nil
}

func formatLabels(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = FormatDiseaseLabel(l)
	}
	return out
}
