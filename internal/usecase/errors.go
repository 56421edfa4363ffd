package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrForbiddenRole = errors.New("operation not permitted for this role")
	ErrInvalidDate   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime   = errors.New("invalid time format")
)

const dateLayout = "2006-01-02"

// Unique indexes backing the application-level checks
const (
	constraintAvailabilityDay   = "idx_availabilities_doctor_day"
	constraintAppointmentActive = "idx_appointments_active_slot"
)

// parseDate reads a YYYY-MM-DD calendar date as midnight UTC
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
