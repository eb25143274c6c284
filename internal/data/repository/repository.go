package repository

import (
	"donor-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Appointment AppointmentRepository
}

// NewRepository wires the Postgres-backed repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Appointment: NewAppointmentRepository(db, log),
	}
}

// NewMemoryRepository wires process-local repositories, used for STORAGE_DRIVER=memory and tests.
func NewMemoryRepository(log *zap.Logger) *Repository {
	return &Repository{
		User:        NewMemoryUserRepository(log),
		Appointment: NewMemoryAppointmentRepository(log),
	}
}
