package usecase

import (
	"donor-booking/internal/data/repository"
	"donor-booking/internal/events"
	"donor-booking/internal/schedule"
	"donor-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Appointment AppointmentService
}

func NewService(
	repo *repository.Repository,
	calendar *schedule.Calendar,
	tokens *utils.TokenManager,
	publisher events.Publisher,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(repo.User, tokens, log),
		User:        NewUserService(repo.User, log),
		Appointment: NewAppointmentService(repo.Appointment, calendar, publisher, log),
	}
}
