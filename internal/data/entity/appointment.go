package entity

import (
	"time"

	"github.com/google/uuid"
)

type ServiceType string

const (
	ServiceHaircut   ServiceType = "haircut"
	ServiceColoring  ServiceType = "coloring"
	ServiceStyling   ServiceType = "styling"
	ServiceTreatment ServiceType = "treatment"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Appointment occupies one (Date, Time) slot while its status is not cancelled.
type Appointment struct {
	Base
	OwnerID     uuid.UUID         `db:"owner_id"`
	ServiceType ServiceType       `db:"service_type"`
	Date        time.Time         `db:"appointment_date"` // midnight UTC
	Time        string            `db:"appointment_time"` // HH:MM
	Status      AppointmentStatus `db:"status"`
	Stylist     string            `db:"stylist"`
	Duration    int               `db:"duration_minutes"`
	Price       float64           `db:"price"`
	Notes       string            `db:"notes"`
}

// HoldsSlot reports whether the appointment counts toward slot conflicts.
func (a *Appointment) HoldsSlot() bool {
	return a.Status != AppointmentCancelled
}

// CanCancel is true for pending and confirmed appointments; cancelling twice is
// treated by callers as a no-op, not a transition.
func (a *Appointment) CanCancel() bool {
	return a.Status == AppointmentPending || a.Status == AppointmentConfirmed
}
