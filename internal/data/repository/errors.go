package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrSlotTaken is returned when a write would leave two live appointments on one slot.
	ErrSlotTaken = errors.New("slot already taken")
	// ErrDuplicate is returned when a unique user attribute is already registered.
	ErrDuplicate = errors.New("duplicate record")
)

const (
	pgUniqueViolation = "23505"

	activeSlotConstraint = "appointments_active_slot_uniq"
)

// uniqueViolation returns the violated constraint name when err is a unique violation.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
