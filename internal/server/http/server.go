package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/ekisa-team/plantx/internal/features"
	"github.com/ekisa-team/plantx/internal/history"
	"github.com/ekisa-team/plantx/internal/knowledge"
	"github.com/ekisa-team/plantx/internal/metrics"
	"github.com/ekisa-team/plantx/internal/model"
	"github.com/ekisa-team/plantx/internal/provider"
	"github.com/ekisa-team/plantx/internal/service"
)

// SessionHeader carries the client session used to key history.
const SessionHeader = "X-Session-ID"

// Dependencies are the services exposed over HTTP.
type Dependencies struct {
	Crop    *service.Crop
	Yield   *service.Yield
	Risk    *service.Risk
	Disease *service.Disease
	Soil    *service.Soil

	Models     *model.Registry
	History    *history.Store
	Treatments *knowledge.Treatments
	Soils      *knowledge.Soils
	Providers  *provider.Set
}

// Register adds every operation to api.
func Register(api huma.API, deps Dependencies) {
	NewAdvisoryHandler(api, deps.Crop, deps.Yield, deps.Risk)
	NewImageHandler(api, deps.Disease, deps.Soil, deps.History)
	NewHistoryHandler(api, deps.History)
	NewKnowledgeHandler(api, deps.Treatments, deps.Soils)
	NewDataHandler(api, deps.Providers)
	NewModelHandler(api, deps.Models)
}

// Server is the HTTP API server.
type Server struct {
	api    huma.API
	server *http.Server
}

// NewServer creates a server listening on port.
func NewServer(port int, deps Dependencies) *Server {
	mux := http.NewServeMux()

	config := huma.DefaultConfig("PlantX", "1.0.0")
	config.Info.Description = "Climate-smart agriculture advisory API"
	api := humago.New(mux, config)
	Register(api, deps)

	mux.Handle("GET /metrics", metrics.Handler())

	return &Server{
		api: api,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// API returns the huma API.
func (s *Server) API() huma.API {
	return s.api
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// problem maps engine errors to HTTP errors. Unknown categories and missing
// fields are the caller's fault.
func problem(err error) error {
	switch {
	case errors.Is(err, features.ErrUnknownCategory), errors.Is(err, features.ErrMissingField):
		return huma.Error422UnprocessableEntity(err.Error(), err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return huma.Error503ServiceUnavailable("request cancelled", err)
	default:
		slog.Error("Request failed", "error", err)
		return huma.Error500InternalServerError("internal error", err)
	}
}
