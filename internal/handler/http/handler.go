package http

import (
	"github.com/MKhiriev/go-study-sync/internal/config"
	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/internal/service"
)

type Handler struct {
	services *service.Services

	// hashKey enables body signature verification on authenticated writes
	// when non-empty. Must match the key the client signs with.
	hashKey string

	logger *logger.Logger
}

func NewHandler(services *service.Services, appCfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hashKey:  appCfg.HashKey,
		logger:   logger,
	}
}
