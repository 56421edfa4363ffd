package validator

import (
	"testing"

	"hospital-scheduling/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AddAvailability(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		req    dto.AddAvailabilityRequest
		errors map[string]string
	}{
		{
			name: "valid",
			req:  dto.AddAvailabilityRequest{Day: "Monday", StartTime: "9:00 AM", EndTime: "17:00"},
		},
		{
			name:   "unknown day",
			req:    dto.AddAvailabilityRequest{Day: "Mon", StartTime: "09:00", EndTime: "17:00"},
			errors: map[string]string{"day": "Invalid day selected."},
		},
		{
			name: "missing fields",
			req:  dto.AddAvailabilityRequest{},
			errors: map[string]string{
				"day":        "day is required",
				"start_time": "start_time is required",
				"end_time":   "end_time is required",
			},
		},
		{
			name:   "bad time",
			req:    dto.AddAvailabilityRequest{Day: "Friday", StartTime: "09:00", EndTime: "13:00 pm"},
			errors: map[string]string{"end_time": "end_time must be a time of day such as 09:30 or 2:30 PM"},
		},
		{
			name: "compact times",
			req:  dto.AddAvailabilityRequest{Day: "Tuesday", StartTime: "930", EndTime: "1430"},
		},
		{
			name:   "date instead of time",
			req:    dto.AddAvailabilityRequest{Day: "Tuesday", StartTime: "2024-06-11", EndTime: "17:00"},
			errors: map[string]string{"start_time": "start_time must be a time of day such as 09:30 or 2:30 PM"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := v.Validate(&req)
			if tt.errors == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errors, v.FormatValidationErrors(err))
		})
	}
}

func TestValidate_AppointmentQuery(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&dto.AppointmentListQuery{}))
	assert.NoError(t, v.Validate(&dto.AppointmentListQuery{Date: "2024-06-12", Status: "confirmed"}))

	err := v.Validate(&dto.AppointmentListQuery{Date: "12-06-2024", Status: "lost"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{
		"date":   "date must be a date in the format YYYY-MM-DD",
		"status": "status must be one of: pending, confirmed, cancelled, rejected, completed",
	}, v.FormatValidationErrors(err))
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	assert.Empty(t, NewValidator().FormatValidationErrors(assert.AnError))
}
