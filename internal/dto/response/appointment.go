package response

import (
	"time"

	"donor-booking/internal/data/entity"
)

type AppointmentResponse struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"userId"`
	ServiceType entity.ServiceType       `json:"serviceType"`
	Date        string                   `json:"date"`
	Time        string                   `json:"time"`
	Status      entity.AppointmentStatus `json:"status"`
	Stylist     string                   `json:"stylist"`
	Duration    int                      `json:"duration"`
	Price       float64                  `json:"price"`
	Notes       string                   `json:"notes,omitempty"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

type AvailableSlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

func AppointmentToResponse(appt *entity.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          appt.ID.String(),
		UserID:      appt.OwnerID.String(),
		ServiceType: appt.ServiceType,
		Date:        appt.Date.Format("2006-01-02"),
		Time:        appt.Time,
		Status:      appt.Status,
		Stylist:     appt.Stylist,
		Duration:    appt.Duration,
		Price:       appt.Price,
		Notes:       appt.Notes,
		CreatedAt:   appt.CreatedAt,
		UpdatedAt:   appt.UpdatedAt,
	}
}

func AppointmentsToResponse(appts []*entity.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, len(appts))
	for i, appt := range appts {
		out[i] = AppointmentToResponse(appt)
	}
	return out
}
