package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"donor-booking/internal/data/entity"
	"donor-booking/internal/data/repository"
	"donor-booking/internal/dto/request"
	"donor-booking/internal/dto/response"
	"donor-booking/internal/events"
	"donor-booking/internal/schedule"
	"donor-booking/pkg/metrics"
	"donor-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

type AppointmentService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *request.CreateAppointmentRequest) (*response.AppointmentResponse, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]response.AppointmentResponse, error)
	GetOne(ctx context.Context, ownerID uuid.UUID, id string) (*response.AppointmentResponse, error)
	Update(ctx context.Context, ownerID uuid.UUID, id string, req *request.UpdateAppointmentRequest) (*response.AppointmentResponse, error)
	Cancel(ctx context.Context, ownerID uuid.UUID, id string) error
	AvailableSlots(ctx context.Context, date string) (*response.AvailableSlotsResponse, error)
}

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	calendar        *schedule.Calendar
	locker          *schedule.SlotLocker
	recordLocks     *schedule.SlotLocker
	publisher       events.Publisher
	log             *zap.Logger
	now             func() time.Time
}

func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	calendar *schedule.Calendar,
	publisher events.Publisher,
	log *zap.Logger,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		calendar:        calendar,
		locker:          schedule.NewSlotLocker(0),
		recordLocks:     schedule.NewSlotLocker(0),
		publisher:       publisher,
		log:             log.With(zap.String("service", "appointment")),
		now:             time.Now,
	}
}

func (s *appointmentService) Create(ctx context.Context, ownerID uuid.UUID, req *request.CreateAppointmentRequest) (resp *response.AppointmentResponse, err error) {
	defer func() { metrics.IncAppointment("create", outcomeOf(err)) }()

	// 1. Validation
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create appointment validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, invalidField("date", "Must be a date in YYYY-MM-DD format")
	}
	if !s.calendar.Contains(req.Time) {
		return nil, s.offGrid()
	}

	now := s.now().UTC()
	appt := &entity.Appointment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:     ownerID,
		ServiceType: entity.ServiceType(req.ServiceType),
		Date:        date,
		Time:        req.Time,
		Status:      entity.AppointmentPending,
		Stylist:     strings.TrimSpace(req.Stylist),
		Duration:    req.Duration,
		Price:       *req.Price,
		Notes:       req.Notes,
	}

	// 2. Check and write under the slot lock
	unlock := s.locker.Lock(schedule.SlotKey(date, req.Time))
	defer unlock()

	if err := s.ensureSlotFree(ctx, date, req.Time, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.Create(ctx, appt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.log.Info("Appointment created",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("date", req.Date),
		zap.String("time", req.Time),
	)
	s.publish(events.AppointmentCreated, appt)

	out := response.AppointmentToResponse(appt)
	return &out, nil
}

func (s *appointmentService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]response.AppointmentResponse, error) {
	appts, err := s.appointmentRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return response.AppointmentsToResponse(appts), nil
}

func (s *appointmentService) GetOne(ctx context.Context, ownerID uuid.UUID, id string) (*response.AppointmentResponse, error) {
	appt, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	out := response.AppointmentToResponse(appt)
	return &out, nil
}

func (s *appointmentService) Update(ctx context.Context, ownerID uuid.UUID, id string, req *request.UpdateAppointmentRequest) (resp *response.AppointmentResponse, err error) {
	defer func() { metrics.IncAppointment("update", outcomeOf(err)) }()

	// held across read, patch and write; a concurrent cancel waits
	unlockRecord := s.lockRecord(id)
	defer unlockRecord()

	current, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update appointment validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	// work on a copy so a rejected patch leaves nothing behind
	updated := *current
	if err := s.applyPatch(&updated, req); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.now().UTC()

	if req.MovesSlot() {
		unlock := s.locker.Lock(schedule.SlotKey(updated.Date, updated.Time))
		defer unlock()

		if err := s.ensureSlotFree(ctx, updated.Date, updated.Time, updated.ID); err != nil {
			return nil, err
		}
	}

	if err := s.appointmentRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	s.log.Info("Appointment updated",
		zap.String("appointment_id", updated.ID.String()),
		zap.Bool("moved", req.MovesSlot()),
	)
	s.publish(events.AppointmentUpdated, &updated)

	out := response.AppointmentToResponse(&updated)
	return &out, nil
}

func (s *appointmentService) Cancel(ctx context.Context, ownerID uuid.UUID, id string) (err error) {
	defer func() { metrics.IncAppointment("cancel", outcomeOf(err)) }()

	unlockRecord := s.lockRecord(id)
	defer unlockRecord()

	appt, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	switch {
	case appt.Status == entity.AppointmentCancelled:
		return nil
	case !appt.CanCancel():
		return invalidField("status", fmt.Sprintf("A %s appointment cannot be cancelled", appt.Status))
	}

	appt.Status = entity.AppointmentCancelled
	appt.UpdatedAt = s.now().UTC()

	if err := s.appointmentRepo.UpdateStatus(ctx, appt.ID, appt.Status, appt.UpdatedAt); err != nil {
		return fmt.Errorf("cancel appointment: %w", err)
	}

	s.log.Info("Appointment cancelled",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	s.publish(events.AppointmentCancelled, appt)

	return nil
}

func (s *appointmentService) AvailableSlots(ctx context.Context, date string) (*response.AvailableSlotsResponse, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, invalidField("date", "Must be a date in YYYY-MM-DD format")
	}

	booked, err := s.appointmentRepo.FindBookedTimes(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("available slots: %w", err)
	}

	return &response.AvailableSlotsResponse{
		Date:  day.Format(utils.DateLayout),
		Slots: s.calendar.Free(booked),
	}, nil
}

// lockRecord serializes Update and Cancel on one appointment. Unparsable ids
// are rejected by findOwned, so they need no lock.
func (s *appointmentService) lockRecord(id string) func() {
	apptID, err := uuid.Parse(id)
	if err != nil {
		return func() {}
	}
	return s.recordLocks.Lock(apptID.String())
}

// findOwned hides records of other owners behind ErrNotFound.
func (s *appointmentService) findOwned(ctx context.Context, ownerID uuid.UUID, id string) (*entity.Appointment, error) {
	apptID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("appointment %w", ErrNotFound)
	}

	appt, err := s.appointmentRepo.FindByID(ctx, apptID)
	if err != nil {
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	if appt == nil || appt.OwnerID != ownerID {
		return nil, fmt.Errorf("appointment %w", ErrNotFound)
	}

	return appt, nil
}

func (s *appointmentService) ensureSlotFree(ctx context.Context, date time.Time, slot string, excludeID uuid.UUID) error {
	holder, err := s.appointmentRepo.FindActiveBySlot(ctx, date, slot, excludeID)
	if err != nil {
		return fmt.Errorf("check slot: %w", err)
	}
	if holder != nil {
		s.log.Debug("Slot already booked",
			zap.String("date", date.Format(utils.DateLayout)),
			zap.String("time", slot),
		)
		return ErrSlotConflict
	}
	return nil
}

func (s *appointmentService) applyPatch(appt *entity.Appointment, req *request.UpdateAppointmentRequest) error {
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			return invalidField("date", "Must be a date in YYYY-MM-DD format")
		}
		appt.Date = date
	}
	if req.Time != nil {
		if !s.calendar.Contains(*req.Time) {
			return s.offGrid()
		}
		appt.Time = *req.Time
	}
	if req.ServiceType != nil {
		appt.ServiceType = entity.ServiceType(*req.ServiceType)
	}
	if req.Stylist != nil {
		appt.Stylist = strings.TrimSpace(*req.Stylist)
	}
	if req.Duration != nil {
		appt.Duration = *req.Duration
	}
	if req.Price != nil {
		appt.Price = *req.Price
	}
	if req.Notes != nil {
		appt.Notes = *req.Notes
	}
	return nil
}

func (s *appointmentService) offGrid() error {
	slots := s.calendar.Slots()
	return invalidField("time", fmt.Sprintf("Must be a slot between %s and %s", slots[0], slots[len(slots)-1]))
}

// publish never fails the caller; the request context may already be gone.
func (s *appointmentService) publish(eventType string, appt *entity.Appointment) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, events.NewAppointmentEvent(eventType, appt, s.now().UTC())); err != nil {
		s.log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("type", eventType),
			zap.String("appointment_id", appt.ID.String()),
		)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSlotConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
