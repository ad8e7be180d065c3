package http

import (
	"github.com/MKhiriev/go-config-keeper/internal/config"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/service"
)

type Handler struct {
	services *service.Services
	cache    config.Cache
	version  string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cache config.Cache, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cache:    cache,
		version:  version,
		logger:   logger,
	}
}
