package http

import (
	"net/http"

	"github.com/MKhiriev/go-shipy/internal/config"
	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/render"
	"github.com/MKhiriev/go-shipy/internal/service"
)

type Handler struct {
	services *service.Services
	renderer *render.Renderer
	static   http.Handler
	cfg      config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, renderer *render.Renderer, static http.Handler, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		renderer: renderer,
		static:   static,
		cfg:      cfg,
		logger:   logger,
	}
}
