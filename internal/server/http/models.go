package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/plantx/internal/model"
)

type (
	// ListModelsOutput is the huma output for the ListModels operation.
	ListModelsOutput struct {
		Body []model.Info
	}

	// ModelKindInput selects a model slot.
	ModelKindInput struct {
		Kind string `path:"kind" enum:"crop_classifier,yield_regressor,risk_classifier,disease_classifier,soil_classifier"`
	}

	// GetModelOutput is the huma output for the GetModel operation.
	GetModelOutput struct {
		Body model.Info
	}
)

// ModelHandler reports and manages the model slots.
type ModelHandler struct {
	models *model.Registry
}

// NewModelHandler creates a new ModelHandler instance.
func NewModelHandler(api huma.API, models *model.Registry) *ModelHandler {
	h := &ModelHandler{models: models}

	huma.Register(api, huma.Operation{
		OperationID: "list-models",
		Method:      http.MethodGet,
		Path:        "/models",
		Summary:     "List model slots with their load status",
		Tags:        []string{"models"},
	}, h.handleListModels)

	huma.Register(api, huma.Operation{
		OperationID: "load-model",
		Method:      http.MethodPost,
		Path:        "/models/{kind}/load",
		Summary:     "Load a model now instead of on first use",
		Tags:        []string{"models"},
	}, h.handleLoadModel)

	huma.Register(api, huma.Operation{
		OperationID: "reset-model",
		Method:      http.MethodPost,
		Path:        "/models/{kind}/reset",
		Summary:     "Discard a loaded model so the next request reloads it",
		Tags:        []string{"models"},
	}, h.handleResetModel)

	return h
}

func (h *ModelHandler) handleListModels(_ context.Context, _ *struct{}) (*ListModelsOutput, error) {
	handles := h.models.Handles()
	out := &ListModelsOutput{Body: make([]model.Info, 0, len(handles))}
	for _, hd := range handles {
		out.Body = append(out.Body, hd.Info())
	}
	return out, nil
}

func (h *ModelHandler) handleLoadModel(ctx context.Context, input *ModelKindInput) (*GetModelOutput, error) {
	hd, err := h.models.Get(ctx, model.Kind(input.Kind))
	switch {
	case errors.Is(err, model.ErrNotFound):
		return nil, huma.Error404NotFound(err.Error())
	case errors.Is(err, model.ErrModelUnavailable):
		// reported through Info
	case err != nil:
		return nil, problem(err)
	}
	return &GetModelOutput{Body: hd.Info()}, nil
}

func (h *ModelHandler) handleResetModel(_ context.Context, input *ModelKindInput) (*GetModelOutput, error) {
	kind := model.Kind(input.Kind)
	if err := h.models.Reset(kind); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, huma.Error404NotFound(err.Error())
		}
		return nil, problem(err)
	}

	hd, _ := h.models.Handle(kind)
	return &GetModelOutput{Body: hd.Info()}, nil
}
