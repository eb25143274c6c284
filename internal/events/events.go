// Package events publishes appointment lifecycle notifications.
package events

import (
	"context"
	"strings"
	"time"

	"donor-booking/internal/data/entity"
)

const (
	AppointmentCreated   = "appointment.created"
	AppointmentUpdated   = "appointment.updated"
	AppointmentCancelled = "appointment.cancelled"
)

// AppointmentEvent is the payload consumers receive.
type AppointmentEvent struct {
	Type          string                   `json:"type"`
	AppointmentID string                   `json:"appointment_id"`
	OwnerID       string                   `json:"owner_id"`
	ServiceType   entity.ServiceType       `json:"service_type"`
	Date          string                   `json:"date"`
	Time          string                   `json:"time"`
	Status        entity.AppointmentStatus `json:"status"`
	Stylist       string                   `json:"stylist"`
	OccurredAt    time.Time                `json:"occurred_at"`
}

func NewAppointmentEvent(eventType string, appt *entity.Appointment, at time.Time) AppointmentEvent {
	return AppointmentEvent{
		Type:          eventType,
		AppointmentID: appt.ID.String(),
		OwnerID:       appt.OwnerID.String(),
		ServiceType:   appt.ServiceType,
		Date:          appt.Date.Format("2006-01-02"),
		Time:          appt.Time,
		Status:        appt.Status,
		Stylist:       appt.Stylist,
		OccurredAt:    at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event AppointmentEvent) error
	Close() error
}

// SplitBrokers parses a comma separated broker list, dropping blanks.
func SplitBrokers(raw string) []string {
	var out []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
