// Package healthcheck reports engine liveness over the gRPC health
// protocol.
package healthcheck

import (
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/agnivade/pitchtrack"
)

// ServiceName is the health service name for the tracking engine.
const ServiceName = "pitchtrack.Engine"

// Reporter maps engine states onto health statuses. The engine is SERVING
// only while it is running.
type Reporter struct {
	server *health.Server
	log    *slog.Logger
}

// New returns a Reporter that starts out NOT_SERVING.
func New(logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Reporter{
		server: health.NewServer(),
		log:    logger,
	}
	r.set(healthgrpc.HealthCheckResponse_NOT_SERVING)
	return r
}

// Register adds the health service to s.
func (r *Reporter) Register(s grpc.ServiceRegistrar) {
	healthgrpc.RegisterHealthServer(s, r.server)
}

// SetEngineState is meant to be passed to pitchtrack.OnStateChange.
func (r *Reporter) SetEngineState(state pitchtrack.EngineState) {
	status := healthgrpc.HealthCheckResponse_NOT_SERVING
	if state == pitchtrack.Running {
		status = healthgrpc.HealthCheckResponse_SERVING
	}
	r.log.Debug("health status", "engine_state", state.String(), "status", status.String())
	r.set(status)
}

// Shutdown marks every service NOT_SERVING permanently.
func (r *Reporter) Shutdown() {
	r.server.Shutdown()
}

func (r *Reporter) set(status healthgrpc.HealthCheckResponse_ServingStatus) {
	r.server.SetServingStatus("", status)
	r.server.SetServingStatus(ServiceName, status)
}
