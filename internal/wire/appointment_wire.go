package wire

import (
	"net/http"

	"donor-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAppointment(
	r chi.Router,
	appointmentHandler *adaptor.AppointmentHandler,
	requireAuth func(http.Handler) http.Handler,
) {
	r.Route("/api/appointments", func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/", appointmentHandler.Create)

		r.Get("/mine", appointmentHandler.ListMine)
		r.Get("/available/{date}", appointmentHandler.AvailableSlots)

		// paths used by the original web client
		r.Get("/my-appointments", appointmentHandler.ListMine)
		r.Get("/available-slots/{date}", appointmentHandler.AvailableSlots)

		r.Get("/{id}", appointmentHandler.GetOne)
		r.Put("/{id}", appointmentHandler.Update)
		r.Delete("/{id}", appointmentHandler.Cancel)
	})
}
