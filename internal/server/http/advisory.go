package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/plantx/internal/features"
	"github.com/ekisa-team/plantx/internal/service"
)

type (
	// RecommendCropInput is the huma input for the RecommendCrop operation.
	RecommendCropInput struct {
		Body features.CropInput
	}

	// RecommendCropOutput is the huma output for the RecommendCrop operation.
	RecommendCropOutput struct {
		Body *service.CropResult
	}

	// PredictYieldInput is the huma input for the PredictYield operation.
	PredictYieldInput struct {
		Body features.YieldInput
	}

	// PredictYieldOutput is the huma output for the PredictYield operation.
	PredictYieldOutput struct {
		Body *service.YieldResult
	}

	// AssessRiskInput is the huma input for the AssessRisk operation.
	AssessRiskInput struct {
		Body features.RiskInput
	}

	// AssessRiskOutput is the huma output for the AssessRisk operation.
	AssessRiskOutput struct {
		Body *service.RiskResult
	}
)

// AdvisoryHandler handles HTTP requests for the tabular engines.
type AdvisoryHandler struct {
	crop  *service.Crop
	yield *service.Yield
	risk  *service.Risk
}

// NewAdvisoryHandler creates a new AdvisoryHandler instance.
func NewAdvisoryHandler(api huma.API, crop *service.Crop, yield *service.Yield, risk *service.Risk) *AdvisoryHandler {
	h := &AdvisoryHandler{crop: crop, yield: yield, risk: risk}

	huma.Register(api, huma.Operation{
		OperationID:   "recommend-crop",
		Method:        http.MethodPost,
		Path:          "/crop/recommend",
		Summary:       "Recommend a crop for soil nutrients and climate",
		Tags:          []string{"advisory"},
		DefaultStatus: http.StatusOK,
	}, h.handleRecommendCrop)

	huma.Register(api, huma.Operation{
		OperationID:   "predict-yield",
		Method:        http.MethodPost,
		Path:          "/yield/predict",
		Summary:       "Predict crop yield in tons per hectare",
		Tags:          []string{"advisory"},
		DefaultStatus: http.StatusOK,
	}, h.handlePredictYield)

	huma.Register(api, huma.Operation{
		OperationID:   "assess-risk",
		Method:        http.MethodPost,
		Path:          "/risk/assess",
		Summary:       "Assess flood risk for a location",
		Tags:          []string{"advisory"},
		DefaultStatus: http.StatusOK,
	}, h.handleAssessRisk)

	return h
}

// handleRecommendCrop handles the recommend-crop operation.
func (h *AdvisoryHandler) handleRecommendCrop(ctx context.Context, input *RecommendCropInput) (*RecommendCropOutput, error) {
	res, err := h.crop.Recommend(ctx, input.Body)
	if err != nil {
		return nil, problem(err)
	}
	return &RecommendCropOutput{Body: res}, nil
}

// handlePredictYield handles the predict-yield operation.
func (h *AdvisoryHandler) handlePredictYield(ctx context.Context, input *PredictYieldInput) (*PredictYieldOutput, error) {
	res, err := h.yield.Predict(ctx, input.Body)
	if err != nil {
		return nil, problem(err)
	}
	return &PredictYieldOutput{Body: res}, nil
}

// handleAssessRisk handles the assess-risk operation.
func (h *AdvisoryHandler) handleAssessRisk(ctx context.Context, input *AssessRiskInput) (*AssessRiskOutput, error) {
	res, err := h.risk.Assess(ctx, input.Body)
	if err != nil {
		return nil, problem(err)
	}
	return &AssessRiskOutput{Body: res}, nil
}
