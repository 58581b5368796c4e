package http

import (
	"github.com/gorilla/websocket"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/service"
	"github.com/MKhiriev/fav-sync/internal/utils"
	"github.com/MKhiriev/fav-sync/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator
	upgrader  websocket.Upgrader
	ids       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		validator: validators.NewValidator(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
}
