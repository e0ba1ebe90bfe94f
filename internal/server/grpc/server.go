package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/ekisa-team/plantx/internal/model"
)

// ServicePrefix prefixes the health service name of each model slot, so the
// crop model reports as "plantx.model.crop_classifier".
const ServicePrefix = "plantx.model."

// ServiceName returns the health service name of kind.
func ServiceName(kind model.Kind) string {
	return ServicePrefix + string(kind)
}

// Server serves the standard gRPC health protocol. The empty service name
// reports the process; every model slot reports its own status.
type Server struct {
	addr   string
	server *grpc.Server
	health *health.Server
}

// NewServer creates a server listening on port.
func NewServer(port int) *Server {
	s := &Server{
		addr:   fmt.Sprintf(":%d", port),
		server: grpc.NewServer(grpc.ChainUnaryInterceptor(logUnary)),
		health: health.NewServer(),
	}

	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)

	for _, kind := range model.Kinds() {
		s.health.SetServingStatus(ServiceName(kind), healthpb.HealthCheckResponse_UNKNOWN)
	}

	return s
}

// Observe mirrors a model status change. It matches model.Observer.
func (s *Server) Observe(kind model.Kind, status model.Status) {
	s.health.SetServingStatus(ServiceName(kind), servingStatus(status))
}

func servingStatus(status model.Status) healthpb.HealthCheckResponse_ServingStatus {
	switch status {
	case model.StatusLoaded, model.StatusDegraded:
		return healthpb.HealthCheckResponse_SERVING
	case model.StatusFailed:
		return healthpb.HealthCheckResponse_NOT_SERVING
	default:
		return healthpb.HealthCheckResponse_UNKNOWN
	}
}

// Start listens on the configured address and serves until Stop is called.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(lis)
}

// Serve accepts connections on lis.
func (s *Server) Serve(lis net.Listener) error {
	slog.Info("gRPC server listening", "addr", lis.Addr().String())
	if err := s.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop marks every service NOT_SERVING and drains in-flight calls until ctx
// is done, after which connections are closed.
func (s *Server) Stop(ctx context.Context) {
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		s.server.Stop()
	}
}

func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	started := time.Now()
	resp, err := handler(ctx, req)
	slog.Debug("gRPC call", "method", info.FullMethod, "duration", time.Since(started), "error", err)
	return resp, err
}
