package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			name:       "active slot violation",
			err:        fmt.Errorf("create appointment: %w", &pgconn.PgError{Code: "23505", ConstraintName: constraintAppointmentActive}),
			constraint: constraintAppointmentActive,
			want:       true,
		},
		{
			name:       "availability day violation, constraint name in upper case",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "IDX_AVAILABILITIES_DOCTOR_DAY"},
			constraint: constraintAvailabilityDay,
			want:       true,
		},
		{
			name:       "other constraint",
			err:        fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}),
			constraint: constraintAppointmentActive,
			want:       false,
		},
		{
			name:       "other error code",
			err:        &pgconn.PgError{Code: "23503", ConstraintName: constraintAppointmentActive},
			constraint: constraintAppointmentActive,
			want:       false,
		},
		{
			name:       "not a postgres error",
			err:        errors.New("duplicate key value violates unique constraint"),
			constraint: constraintAppointmentActive,
			want:       false,
		},
		{
			name:       "nil",
			constraint: constraintAppointmentActive,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateKeyError(tt.err, tt.constraint))
		})
	}
}
