package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"donor-booking/internal/data/entity"
	"donor-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AppointmentRepository interface {
	// Create returns ErrSlotTaken if another live appointment already holds the slot.
	Create(ctx context.Context, appt *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	// FindByOwner returns every appointment of the owner, ordered by date then time.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Appointment, error)
	// FindActiveBySlot returns the non-cancelled appointment on the slot, ignoring excludeID.
	FindActiveBySlot(ctx context.Context, date time.Time, slot string, excludeID uuid.UUID) (*entity.Appointment, error)
	// FindBookedTimes lists the times held by non-cancelled appointments on date.
	FindBookedTimes(ctx context.Context, date time.Time) ([]string, error)
	// Update overwrites the patchable fields and leaves status alone; appt.Status is
	// refreshed from the store. Returns ErrSlotTaken like Create.
	Update(ctx context.Context, appt *entity.Appointment) error
	// UpdateStatus moves the appointment to status. Returns ErrSlotTaken if that would
	// revive a slot another live appointment holds.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus, at time.Time) error
}

type appointmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAppointmentRepository(db database.PgxIface, log *zap.Logger) AppointmentRepository {
	return &appointmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "appointment")),
	}
}

const appointmentColumns = `id, owner_id, service_type, appointment_date, appointment_time, status,
	stylist, duration_minutes, price, notes, created_at, updated_at`

func (r *appointmentRepository) Create(ctx context.Context, appt *entity.Appointment) error {
	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		appt.ID,
		appt.OwnerID,
		appt.ServiceType,
		appt.Date,
		appt.Time,
		appt.Status,
		appt.Stylist,
		appt.Duration,
		appt.Price,
		appt.Notes,
		appt.CreatedAt,
		appt.UpdatedAt,
	)

	if err := r.mapWriteError(err, appt, "create"); err != nil {
		return err
	}

	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find appointment by ID",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return nil, fmt.Errorf("find appointment %s: %w", id, err)
	}

	return appt, nil
}

func (r *appointmentRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE owner_id = $1
		ORDER BY appointment_date ASC, appointment_time ASC
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to list appointments",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("list appointments of %s: %w", ownerID, err)
	}
	defer rows.Close()

	appts := make([]*entity.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appts = append(appts, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}

	return appts, nil
}

func (r *appointmentRepository) FindActiveBySlot(ctx context.Context, date time.Time, slot string, excludeID uuid.UUID) (*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE appointment_date = $1
		  AND appointment_time = $2
		  AND status <> 'cancelled'
		  AND id <> $3
		LIMIT 1
	`

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, date, slot, excludeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to check slot",
			zap.Error(err),
			zap.Time("date", date),
			zap.String("time", slot),
		)
		return nil, fmt.Errorf("check slot %s %s: %w", date.Format("2006-01-02"), slot, err)
	}

	return appt, nil
}

func (r *appointmentRepository) FindBookedTimes(ctx context.Context, date time.Time) ([]string, error) {
	query := `
		SELECT appointment_time
		FROM appointments
		WHERE appointment_date = $1 AND status <> 'cancelled'
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to list booked times", zap.Error(err), zap.Time("date", date))
		return nil, fmt.Errorf("list booked times: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("scan booked time: %w", err)
		}
		times = append(times, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booked times: %w", err)
	}

	return times, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appt *entity.Appointment) error {
	query := `
		UPDATE appointments
		SET service_type = $2,
		    appointment_date = $3,
		    appointment_time = $4,
		    stylist = $5,
		    duration_minutes = $6,
		    price = $7,
		    notes = $8,
		    updated_at = $9
		WHERE id = $1
		RETURNING status
	`

	err := r.db.QueryRow(ctx, query,
		appt.ID,
		appt.ServiceType,
		appt.Date,
		appt.Time,
		appt.Stylist,
		appt.Duration,
		appt.Price,
		appt.Notes,
		appt.UpdatedAt,
	).Scan(&appt.Status)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update appointment %s: no rows affected", appt.ID)
	}
	if err := r.mapWriteError(err, appt, "update"); err != nil {
		return err
	}

	return nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus, at time.Time) error {
	query := `UPDATE appointments SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status, at)
	if err := r.mapWriteError(err, &entity.Appointment{Base: entity.Base{ID: id}}, "update status"); err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update appointment %s status: no rows affected", id)
	}

	return nil
}

// mapWriteError turns the partial unique index violation into ErrSlotTaken.
func (r *appointmentRepository) mapWriteError(err error, appt *entity.Appointment, op string) error {
	if err == nil {
		return nil
	}

	if constraint, ok := uniqueViolation(err); ok && constraint == activeSlotConstraint {
		r.log.Warn("Slot taken by concurrent writer",
			zap.String("op", op),
			zap.String("appointment_id", appt.ID.String()),
			zap.String("time", appt.Time),
		)
		return fmt.Errorf("%s appointment %s: %w", op, appt.ID, ErrSlotTaken)
	}

	r.log.Error("Failed to write appointment",
		zap.Error(err),
		zap.String("op", op),
		zap.String("appointment_id", appt.ID.String()),
	)
	return fmt.Errorf("%s appointment %s: %w", op, appt.ID, err)
}

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := row.Scan(
		&appt.ID,
		&appt.OwnerID,
		&appt.ServiceType,
		&appt.Date,
		&appt.Time,
		&appt.Status,
		&appt.Stylist,
		&appt.Duration,
		&appt.Price,
		&appt.Notes,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}
