package grpcserver

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/designhouse/printdesk/internal/metrics"
)

// Pinger is the dependency whose availability decides the serving status.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes grpc.health.v1 for the whole service.
type Server struct {
	grpc     *grpc.Server
	health   *health.Server
	pinger   Pinger
	interval time.Duration
	logger   *zap.Logger
}

func NewServer(pinger Pinger, interval time.Duration, logger *zap.Logger) *Server {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	s := &Server{
		health:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
		logger:   logger,
	}
	s.grpc = grpc.NewServer(grpc.UnaryInterceptor(s.logUnary))
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Health returns the health service, mainly for in-process checks.
func (s *Server) Health() healthpb.HealthServer {
	return s.health
}

func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC health server listening", zap.String("addr", lis.Addr().String()))
	return s.grpc.Serve(lis)
}

// Watch pings the dependency on every tick and updates the serving status
// until ctx is done.
func (s *Server) Watch(ctx context.Context) {
	s.check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.Ping(pingCtx); err != nil {
		st = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn("database ping failed", zap.Error(err))
	}
	s.health.SetServingStatus("", st)
}

// Stop marks the service as not serving and drains in-flight calls.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

func (s *Server) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	l := s.logger.With(zap.String("rpc_method", info.FullMethod), zap.Duration("duration", time.Since(start)))
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("grpc").Inc()
		l.Warn("rpc failed", zap.Stringer("code", status.Code(err)), zap.Error(err))
		return resp, err
	}
	l.Debug("rpc handled")
	return resp, nil
}
