package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidDateRange   = errors.New("invalid date range, use YYYY-MM-DD with end on or after start")
	ErrInvalidTimeFormat  = errors.New("invalid time format, use HH:MM or HH:MM:SS")
	ErrInvalidBookingTime = errors.New("invalid booking_time, use an ISO-8601 instant")

	ErrServiceNotFound  = errors.New("service not found")
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAuditLogNotFound = errors.New("audit log not found")

	ErrDoctorUnavailable    = errors.New("doctor is not available for this booking")
	ErrBookingNotAssignable = errors.New("booking cannot be assigned in its current state")

	// ErrDependencyUnavailable marks a failed store read or write. Safe to retry.
	ErrDependencyUnavailable = errors.New("scheduling data is temporarily unavailable")
)

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func dependencyUnavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
