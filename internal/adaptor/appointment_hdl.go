package adaptor

import (
	"net/http"

	"donor-booking/internal/dto/request"
	"donor-booking/internal/usecase"
	"donor-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	service usecase.AppointmentService
	log     *zap.Logger
}

func NewAppointmentHandler(service usecase.AppointmentService, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		log:     log.With(zap.String("handler", "appointment")),
	}
}

// Create handles POST /api/appointments (protected)
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateAppointmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	appt, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create appointment")
		return
	}

	utils.ResponseCreated(w, "Appointment created", appt)
}

// ListMine handles GET /api/appointments/mine (protected)
func (h *AppointmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	appts, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "list appointments")
		return
	}

	utils.ResponseSuccess(w, "success", appts)
}

// GetOne handles GET /api/appointments/{id} (protected)
func (h *AppointmentHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	appt, err := h.service.GetOne(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get appointment")
		return
	}

	utils.ResponseSuccess(w, "success", appt)
}

// Update handles PUT /api/appointments/{id} (protected)
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateAppointmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	appt, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update appointment")
		return
	}

	utils.ResponseSuccess(w, "Appointment updated", appt)
}

// Cancel handles DELETE /api/appointments/{id} (protected). The record is kept with status cancelled.
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Cancel(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "cancel appointment")
		return
	}

	utils.ResponseSuccess(w, "Appointment cancelled", nil)
}

// AvailableSlots handles GET /api/appointments/available/{date} (protected)
func (h *AppointmentHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.AvailableSlots(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		handleServiceError(h.log, w, err, "available slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}
