// Package health exposes database reachability through the standard
// grpc.health.v1.Health service.
package health

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-user-posts/internal/logger"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// DefaultInterval is how often Watch pings the database.
const DefaultInterval = 5 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server tracks database reachability and serves it over gRPC.
type Server struct {
	srv      *grpchealth.Server
	db       Pinger
	interval time.Duration
}

// NewServer creates a Server. The status is NOT_SERVING until the first probe.
func NewServer(db Pinger, interval time.Duration) *Server {
	if interval <= 0 {
		interval = DefaultInterval
	}
	srv := grpchealth.NewServer()
	srv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return &Server{srv: srv, db: db, interval: interval}
}

// Register attaches the health service to g.
func (s *Server) Register(g *grpc.Server) {
	healthpb.RegisterHealthServer(g, s.srv)
}

// Probe pings the database once and updates the serving status.
func (s *Server) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.PingContext(ctx); err != nil {
		logger.Log.Warnw("database ping failed", "err", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.srv.SetServingStatus("", status)
	return status
}

// Watch probes the database every interval until ctx is done, then marks the
// service as shutting down.
func (s *Server) Watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			s.srv.Shutdown()
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}
