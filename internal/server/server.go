package server

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-shipy/internal/config"
	"github.com/MKhiriev/go-shipy/internal/handler"
	"github.com/MKhiriev/go-shipy/internal/logger"
)

type server struct {
	httpServer *httpServer
	cfg        config.Server
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}

	return newServer(handlers.HTTP.Init(), cfg, logger), nil
}

func newServer(h http.Handler, cfg config.Server, logger *logger.Logger) *server {
	return &server{
		httpServer: newHTTPServer(h, cfg, logger),
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *server) RunServer(ctx context.Context) error {
	if err := s.httpServer.listen(); err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Err(err).Msg("error during graceful shutdown")
		return err
	}
	if err := <-serveErr; err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
