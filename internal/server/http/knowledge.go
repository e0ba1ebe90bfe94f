package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/plantx/internal/features"
	"github.com/ekisa-team/plantx/internal/knowledge"
)

type (
	// ListTreatmentsOutput is the huma output for the ListTreatments operation.
	ListTreatmentsOutput struct {
		Body []knowledge.Treatment
	}

	// LookupTreatmentInput is the huma input for the LookupTreatment operation.
	LookupTreatmentInput struct {
		Label string `query:"label" required:"true" doc:"Predicted disease label"`
	}

	// LookupTreatmentOutput is the huma output for the LookupTreatment operation.
	LookupTreatmentOutput struct {
		Body knowledge.Treatment
	}

	// ListSoilsOutput is the huma output for the ListSoils operation.
	ListSoilsOutput struct {
		Body []knowledge.SoilCharacteristics
	}

	// GetCropProfileInput is the huma input for the GetCropProfile operation.
	GetCropProfileInput struct {
		Name string `path:"name"`
	}

	// GetCropProfileOutput is the huma output for the GetCropProfile operation.
	GetCropProfileOutput struct {
		Body knowledge.CropProfile
	}

	// GetYieldProfileInput is the huma input for the GetYieldProfile operation.
	GetYieldProfileInput struct {
		Crop string `path:"crop"`
	}

	// GetYieldProfileOutput is the huma output for the GetYieldProfile operation.
	GetYieldProfileOutput struct {
		Body knowledge.YieldProfile
	}

	// Categories lists the names each categorical field accepts.
	Categories struct {
		Crops      []string `json:"crops"`
		States     []string `json:"states"`
		LandCovers []string `json:"land_covers"`
		FloodSoils []string `json:"flood_soils"`
	}

	// ListCategoriesOutput is the huma output for the ListCategories operation.
	ListCategoriesOutput struct {
		Body Categories
	}
)

// KnowledgeHandler serves the reference data behind the engines.
type KnowledgeHandler struct {
	treatments *knowledge.Treatments
	soils      *knowledge.Soils
}

// NewKnowledgeHandler creates a new KnowledgeHandler instance.
func NewKnowledgeHandler(api huma.API, treatments *knowledge.Treatments, soils *knowledge.Soils) *KnowledgeHandler {
	h := &KnowledgeHandler{treatments: treatments, soils: soils}

	huma.Register(api, huma.Operation{
		OperationID: "list-treatments",
		Method:      http.MethodGet,
		Path:        "/knowledge/treatments",
		Summary:     "List disease treatment records",
		Tags:        []string{"knowledge"},
	}, h.handleListTreatments)

	huma.Register(api, huma.Operation{
		OperationID: "lookup-treatment",
		Method:      http.MethodGet,
		Path:        "/knowledge/treatments/lookup",
		Summary:     "Find the treatment record for a disease label",
		Tags:        []string{"knowledge"},
	}, h.handleLookupTreatment)

	huma.Register(api, huma.Operation{
		OperationID: "list-soils",
		Method:      http.MethodGet,
		Path:        "/knowledge/soils",
		Summary:     "List soil type characteristics",
		Tags:        []string{"knowledge"},
	}, h.handleListSoils)

	huma.Register(api, huma.Operation{
		OperationID: "get-crop-profile",
		Method:      http.MethodGet,
		Path:        "/knowledge/crops/{name}",
		Summary:     "Get the typical growing conditions of a crop",
		Tags:        []string{"knowledge"},
	}, h.handleGetCropProfile)

	huma.Register(api, huma.Operation{
		OperationID: "get-yield-profile",
		Method:      http.MethodGet,
		Path:        "/knowledge/yield/{crop}",
		Summary:     "Get base yield and thresholds of a crop",
		Tags:        []string{"knowledge"},
	}, h.handleGetYieldProfile)

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/knowledge/categories",
		Summary:     "List accepted values of categorical inputs",
		Tags:        []string{"knowledge"},
	}, h.handleListCategories)

	return h
}

func (h *KnowledgeHandler) handleListTreatments(_ context.Context, _ *struct{}) (*ListTreatmentsOutput, error) {
	return &ListTreatmentsOutput{Body: h.treatments.All()}, nil
}

func (h *KnowledgeHandler) handleLookupTreatment(_ context.Context, input *LookupTreatmentInput) (*LookupTreatmentOutput, error) {
	rec, err := h.treatments.Lookup(input.Label)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &LookupTreatmentOutput{Body: rec}, nil
}

func (h *KnowledgeHandler) handleListSoils(_ context.Context, _ *struct{}) (*ListSoilsOutput, error) {
	return &ListSoilsOutput{Body: h.soils.All()}, nil
}

func (h *KnowledgeHandler) handleGetCropProfile(_ context.Context, input *GetCropProfileInput) (*GetCropProfileOutput, error) {
	p, err := knowledge.CropProfileFor(input.Name)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &GetCropProfileOutput{Body: p}, nil
}

func (h *KnowledgeHandler) handleGetYieldProfile(_ context.Context, input *GetYieldProfileInput) (*GetYieldProfileOutput, error) {
	name, err := features.Crops.Canonical(input.Crop)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &GetYieldProfileOutput{Body: knowledge.YieldProfileFor(name)}, nil
}

func (h *KnowledgeHandler) handleListCategories(_ context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	return &ListCategoriesOutput{Body: Categories{
		Crops:      features.Crops.Names(),
		States:     features.States.Names(),
		LandCovers: features.LandCovers.Names(),
		FloodSoils: features.FloodSoils.Names(),
	}}, nil
}
