package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/plantx/internal/history"
)

type (
	// ListHistoryInput is the huma input for the ListHistory operation.
	ListHistoryInput struct {
		SessionID string `header:"X-Session-ID" required:"true"`
		Kind      string `path:"kind" enum:"disease,soil"`
	}

	// ListHistoryOutput is the huma output for the ListHistory operation.
	ListHistoryOutput struct {
		Body []history.Record
	}

	// ClearHistoryInput is the huma input for the ClearHistory operation.
	ClearHistoryInput struct {
		SessionID string `header:"X-Session-ID" required:"true"`
	}
)

// HistoryHandler handles HTTP requests for session history.
type HistoryHandler struct {
	store *history.Store
}

// NewHistoryHandler creates a new HistoryHandler instance.
func NewHistoryHandler(api huma.API, store *history.Store) *HistoryHandler {
	h := &HistoryHandler{store: store}

	huma.Register(api, huma.Operation{
		OperationID: "list-history",
		Method:      http.MethodGet,
		Path:        "/history/{kind}",
		Summary:     "List the recent results of a session, newest first",
		Tags:        []string{"history"},
	}, h.handleList)

	huma.Register(api, huma.Operation{
		OperationID:   "clear-history",
		Method:        http.MethodDelete,
		Path:          "/history",
		Summary:       "Forget every result of a session",
		Tags:          []string{"history"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleClear)

	return h
}

// handleList handles the list-history operation.
func (h *HistoryHandler) handleList(_ context.Context, input *ListHistoryInput) (*ListHistoryOutput, error) {
	return &ListHistoryOutput{Body: h.store.List(input.SessionID, history.Kind(input.Kind))}, nil
}

// handleClear handles the clear-history operation.
func (h *HistoryHandler) handleClear(_ context.Context, input *ClearHistoryInput) (*struct{}, error) {
	h.store.Clear(input.SessionID)
	return nil, nil
}
