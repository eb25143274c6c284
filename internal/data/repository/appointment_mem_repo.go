package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"donor-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryAppointmentRepository keeps appointments in process. It maintains its own
// slot index so a second live booking on a slot is refused the same way the
// partial unique index refuses it in Postgres.
type memoryAppointmentRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]entity.Appointment
	slots map[string]uuid.UUID
	log   *zap.Logger
}

func NewMemoryAppointmentRepository(log *zap.Logger) AppointmentRepository {
	return &memoryAppointmentRepository{
		byID:  make(map[uuid.UUID]entity.Appointment),
		slots: make(map[string]uuid.UUID),
		log:   log.With(zap.String("repository", "appointment_memory")),
	}
}

func slotIndexKey(date time.Time, slot string) string {
	return date.Format("2006-01-02") + "|" + slot
}

func (r *memoryAppointmentRepository) Create(_ context.Context, appt *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[appt.ID]; exists {
		return fmt.Errorf("create appointment %s: id already exists", appt.ID)
	}

	key := slotIndexKey(appt.Date, appt.Time)
	if appt.HoldsSlot() {
		if holder, taken := r.slots[key]; taken {
			r.log.Warn("Slot taken by concurrent writer",
				zap.String("appointment_id", appt.ID.String()),
				zap.String("holder_id", holder.String()),
			)
			return fmt.Errorf("create appointment %s: %w", appt.ID, ErrSlotTaken)
		}
		r.slots[key] = appt.ID
	}

	r.byID[appt.ID] = *appt
	return nil
}

func (r *memoryAppointmentRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &appt, nil
}

func (r *memoryAppointmentRepository) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appts := make([]*entity.Appointment, 0)
	for _, appt := range r.byID {
		if appt.OwnerID == ownerID {
			cp := appt
			appts = append(appts, &cp)
		}
	}

	sort.SliceStable(appts, func(i, j int) bool {
		if !appts[i].Date.Equal(appts[j].Date) {
			return appts[i].Date.Before(appts[j].Date)
		}
		return appts[i].Time < appts[j].Time
	})

	return appts, nil
}

func (r *memoryAppointmentRepository) FindActiveBySlot(_ context.Context, date time.Time, slot string, excludeID uuid.UUID) (*entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	holder, ok := r.slots[slotIndexKey(date, slot)]
	if !ok || holder == excludeID {
		return nil, nil
	}

	appt := r.byID[holder]
	return &appt, nil
}

func (r *memoryAppointmentRepository) FindBookedTimes(_ context.Context, date time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefix := date.Format("2006-01-02") + "|"
	var times []string
	for key := range r.slots {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			times = append(times, key[len(prefix):])
		}
	}
	sort.Strings(times)

	return times, nil
}

func (r *memoryAppointmentRepository) Update(_ context.Context, appt *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[appt.ID]
	if !ok {
		return fmt.Errorf("update appointment %s: no rows affected", appt.ID)
	}

	// status is owned by UpdateStatus
	next := *appt
	next.Status = current.Status

	if err := r.moveSlot(&current, &next); err != nil {
		return fmt.Errorf("update appointment %s: %w", appt.ID, err)
	}

	r.byID[appt.ID] = next
	appt.Status = next.Status
	return nil
}

func (r *memoryAppointmentRepository) UpdateStatus(_ context.Context, id uuid.UUID, status entity.AppointmentStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("update appointment %s status: no rows affected", id)
	}

	next := current
	next.Status = status
	next.UpdatedAt = at

	if err := r.moveSlot(&current, &next); err != nil {
		return fmt.Errorf("update appointment %s status: %w", id, err)
	}

	r.byID[id] = next
	return nil
}

// moveSlot re-points the slot index from current to next. Caller holds mu.
func (r *memoryAppointmentRepository) moveSlot(current, next *entity.Appointment) error {
	oldKey := slotIndexKey(current.Date, current.Time)
	newKey := slotIndexKey(next.Date, next.Time)

	if next.HoldsSlot() {
		if holder, taken := r.slots[newKey]; taken && holder != next.ID {
			return ErrSlotTaken
		}
	}

	if current.HoldsSlot() && r.slots[oldKey] == current.ID {
		delete(r.slots, oldKey)
	}
	if next.HoldsSlot() {
		r.slots[newKey] = next.ID
	}
	return nil
}
