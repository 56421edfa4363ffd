package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-scheduling/internal/domain/entity"
)

func TestIsEndAfterStart(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"equal times", "09:00:00", "09:00:00", false},
		{"end before start", "09:00:00", "08:59:59", false},
		{"one second later", "09:00:00", "09:00:01", true},
		{"full day", "00:00:00", "23:59:59", true},
		{"malformed start", "9am", "10:00:00", false},
		{"malformed end", "09:00:00", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEndAfterStart(tt.start, tt.end))
		})
	}
}

func TestValidateWindow(t *testing.T) {
	w, err := ValidateWindow(" Monday ", "9:00 am", "5 PM")
	require.NoError(t, err)
	assert.Equal(t, entity.Monday, w.Day)
	assert.Equal(t, "09:00:00", w.Start)
	assert.Equal(t, "17:00:00", w.End)
}

func TestValidateWindowErrors(t *testing.T) {
	tests := []struct {
		name  string
		day   string
		start string
		end   string
		err   error
	}{
		{"lowercase day", "monday", "09:00", "10:00", ErrInvalidDay},
		{"unknown day", "Funday", "09:00", "10:00", ErrInvalidDay},
		{"bad start", "Tuesday", "later", "10:00", ErrInvalidStartTime},
		{"bad end", "Tuesday", "09:00", "", ErrInvalidEndTime},
		{"end equals start", "Friday", "10:00", "10:00:00", ErrEndNotAfterStart},
		{"end before start", "Friday", "2 pm", "13:00", ErrEndNotAfterStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateWindow(tt.day, tt.start, tt.end)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
