package http

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/DRSN-tech/product-registry/internal/cfg"
	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/DRSN-tech/product-registry/pkg/logger"
	"github.com/jimlawless/whereami"
)

// Server обслуживает REST API реестра.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

func NewServer(handler http.Handler, cfg *cfg.HTTPConfig, logger logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort("", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}
}

// Run блокируется до остановки сервера. Штатная остановка через Stop не считается ошибкой.
func (s *Server) Run() error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return s.Serve(lis)
}

// Serve обслуживает уже открытый listener.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Infof("HTTP server listening on %s", lis.Addr())

	if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warnf("HTTP server forced to stop: %v", err)
		return e.Wrap(whereami.WhereAmI(), err)
	}

	s.logger.Infof("HTTP server stopped gracefully")
	return nil
}
