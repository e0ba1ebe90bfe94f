package http

import (
	"bytes"
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/ekisa-team/plantx/internal/history"
	"github.com/ekisa-team/plantx/internal/service"
)

// maxImageBytes bounds uploaded images.
const maxImageBytes = 16 << 20

type (
	// ClassifyImageInput is the huma input for the image operations.
	ClassifyImageInput struct {
		SessionID string `header:"X-Session-ID" doc:"Session whose history records the result"`
		RawBody   []byte `contentType:"image/*"`
	}

	// ClassifyDiseaseOutput is the huma output for the ClassifyDisease operation.
	ClassifyDiseaseOutput struct {
		SessionID string `header:"X-Session-ID"`
		Body      *service.DiseaseResult
	}

	// ClassifySoilOutput is the huma output for the ClassifySoil operation.
	ClassifySoilOutput struct {
		SessionID string `header:"X-Session-ID"`
		Body      *service.SoilResult
	}
)

// ImageHandler handles HTTP requests for the image classifiers.
type ImageHandler struct {
	disease *service.Disease
	soil    *service.Soil
	history *history.Store
}

// NewImageHandler creates a new ImageHandler instance.
func NewImageHandler(api huma.API, disease *service.Disease, soil *service.Soil, store *history.Store) *ImageHandler {
	h := &ImageHandler{disease: disease, soil: soil, history: store}

	huma.Register(api, huma.Operation{
		OperationID:   "classify-disease",
		Method:        http.MethodPost,
		Path:          "/disease/classify",
		Summary:       "Diagnose plant disease from a leaf image",
		Tags:          []string{"imaging"},
		MaxBodyBytes:  maxImageBytes,
		DefaultStatus: http.StatusOK,
	}, h.handleClassifyDisease)

	huma.Register(api, huma.Operation{
		OperationID:   "classify-soil",
		Method:        http.MethodPost,
		Path:          "/soil/classify",
		Summary:       "Classify soil type from a photograph",
		Tags:          []string{"imaging"},
		MaxBodyBytes:  maxImageBytes,
		DefaultStatus: http.StatusOK,
	}, h.handleClassifySoil)

	return h
}

// handleClassifyDisease handles the classify-disease operation.
func (h *ImageHandler) handleClassifyDisease(ctx context.Context, input *ClassifyImageInput) (*ClassifyDiseaseOutput, error) {
	res, err := h.disease.Classify(ctx, bytes.NewReader(input.RawBody))
	if err != nil {
		return nil, problem(err)
	}

	session := sessionID(input.SessionID)
	if res.Success {
		details := map[string]any{"predictions": res.Predictions}
		if res.Treatment != nil {
			details["treatment"] = res.Treatment.Name
		}
		h.history.Add(session, history.KindDisease, res.Disease, res.Confidence, details)
	}

	return &ClassifyDiseaseOutput{SessionID: session, Body: res}, nil
}

// handleClassifySoil handles the classify-soil operation.
func (h *ImageHandler) handleClassifySoil(ctx context.Context, input *ClassifyImageInput) (*ClassifySoilOutput, error) {
	res, err := h.soil.Analyze(ctx, bytes.NewReader(input.RawBody))
	if err != nil {
		return nil, problem(err)
	}

	session := sessionID(input.SessionID)
	if res.Success {
		h.history.Add(session, history.KindSoil, res.SoilType, res.Confidence, map[string]any{
			"predictions": res.Predictions,
			"degraded":    res.Degraded,
		})
	}

	return &ClassifySoilOutput{SessionID: session, Body: res}, nil
}

// sessionID returns id in canonical form, or a fresh one when the client sent
// none or something other than a UUID.
func sessionID(id string) string {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return history.NewSessionID()
	}
	return parsed.String()
}
