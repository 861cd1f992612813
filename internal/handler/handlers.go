package handler

import (
	"github.com/MKhiriev/go-shipy/internal/config"
	"github.com/MKhiriev/go-shipy/internal/handler/http"
	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/render"
	"github.com/MKhiriev/go-shipy/internal/service"
	"github.com/MKhiriev/go-shipy/web"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers loads the embedded templates and assets and builds the HTTP
// handler.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(templates)
	if err != nil {
		return nil, err
	}
	static, err := web.Static()
	if err != nil {
		return nil, err
	}

	return &Handlers{
		HTTP: http.NewHandler(services, renderer, static, cfg, logger),
	}, nil
}
