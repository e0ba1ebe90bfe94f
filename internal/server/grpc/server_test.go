package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/ekisa-team/plantx/internal/model"
)

func startServer(t *testing.T) (*Server, healthpb.HealthClient) {
	t.Helper()

	srv := NewServer(0)
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Stop(ctx)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return srv, healthpb.NewHealthClient(conn)
}

func check(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestServer_ProcessServing(t *testing.T) {
	_, client := startServer(t)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, ""))
}

func TestServer_ModelsStartUnknown(t *testing.T) {
	_, client := startServer(t)
	for _, kind := range model.Kinds() {
		assert.Equal(t, healthpb.HealthCheckResponse_UNKNOWN, check(t, client, ServiceName(kind)), kind)
	}
}

func TestServer_Observe(t *testing.T) {
	srv, client := startServer(t)

	tests := []struct {
		status model.Status
		want   healthpb.HealthCheckResponse_ServingStatus
	}{
		{model.StatusLoading, healthpb.HealthCheckResponse_UNKNOWN},
		{model.StatusLoaded, healthpb.HealthCheckResponse_SERVING},
		{model.StatusDegraded, healthpb.HealthCheckResponse_SERVING},
		{model.StatusFailed, healthpb.HealthCheckResponse_NOT_SERVING},
		{model.StatusUnloaded, healthpb.HealthCheckResponse_UNKNOWN},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			srv.Observe(model.KindRisk, tt.status)
			assert.Equal(t, tt.want, check(t, client, "plantx.model.risk_classifier"))
		})
	}
}

func TestServer_UnknownService(t *testing.T) {
	_, client := startServer(t)

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "plantx.model.weather"})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServer_ObserverWiredToRegistry(t *testing.T) {
	srv, client := startServer(t)

	obs := model.Observer(srv.Observe)
	obs(model.KindSoil, model.StatusDegraded)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, ServiceName(model.KindSoil)))
}
