package adaptor

import (
	"donor-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Appointment *AppointmentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, service.User, log),
		Appointment: NewAppointmentHandler(service.Appointment, log),
	}
}
