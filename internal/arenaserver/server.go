package arenaserver

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/cory-johannsen/arena/internal/config"
)

// Server hosts the arena gRPC service. It satisfies server.Service.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	grpcServer      *grpc.Server
	health          *health.Server
	logger          *zap.Logger
}

// NewServer creates a Server with the arena and health services registered.
//
// Precondition: svc and logger must be non-nil.
func NewServer(cfg config.ServerConfig, svc *GRPCService, logger *zap.Logger) *Server {
	gs := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(logger)))
	RegisterArenaServer(gs, svc)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)
	reflection.Register(gs)

	return &Server{
		addr:            cfg.Addr(),
		shutdownTimeout: cfg.ShutdownTimeout,
		grpcServer:      gs,
		health:          hs,
		logger:          logger,
	}
}

// Start listens on the configured address and serves until Stop.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	return s.Serve(lis)
}

// Serve serves on an existing listener until Stop.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("arena gRPC server listening", zap.String("addr", lis.Addr().String()))
	if err := s.grpcServer.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("serving gRPC: %w", err)
	}
	return nil
}

// Stop drains in-flight calls, then forces shutdown after the configured timeout.
func (s *Server) Stop() {
	s.health.Shutdown()
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()
	if s.shutdownTimeout <= 0 {
		<-done
		return
	}
	select {
	case <-done:
	case <-time.After(s.shutdownTimeout):
		s.logger.Warn("graceful shutdown timed out, forcing stop",
			zap.Duration("timeout", s.shutdownTimeout),
		)
		s.grpcServer.Stop()
	}
}

func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Debug("grpc call",
			zap.String("method", info.FullMethod),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("code", status.Code(err).String()),
		)
		return resp, err
	}
}
