package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/DRSN-tech/product-registry/internal/cfg"
	"github.com/DRSN-tech/product-registry/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// RegistryServiceName - имя сервиса в ответах grpc.health.v1.
const RegistryServiceName = "registry.v1.Registry"

// GRPCServer отдаёт стандартный health-check, по которому оркестратор проверяет готовность реестра.
type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	cfg    *cfg.GRPCConfig
	logger logger.Logger
}

func NewGRPCServer(cfg *cfg.GRPCConfig, logger logger.Logger) *GRPCServer {
	s := &GRPCServer{
		server: grpc.NewServer(),
		health: health.NewServer(),
		cfg:    cfg,
		logger: logger,
	}
	grpc_health_v1.RegisterHealthServer(s.server, s.health)
	s.setStatus(grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return s
}

// MarkServing переводит сервис в состояние SERVING после инициализации зависимостей.
func (s *GRPCServer) MarkServing() {
	s.setStatus(grpc_health_v1.HealthCheckResponse_SERVING)
}

func (s *GRPCServer) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	lis, err := net.Listen(s.cfg.NetworkMode, addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return s.Serve(lis)
}

// Serve обслуживает уже открытый listener. Используется в тестах с bufconn/локальным портом.
func (s *GRPCServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

func (s *GRPCServer) Stop(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Infof("gRPC server stopped gracefully")
		return nil
	case <-ctx.Done():
		s.server.Stop()
		s.logger.Warnf("gRPC server forced to stop after timeout")
		return ctx.Err()
	}
}

func (s *GRPCServer) setStatus(status grpc_health_v1.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(RegistryServiceName, status)
}
