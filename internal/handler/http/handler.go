package http

import (
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
