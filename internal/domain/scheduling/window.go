package scheduling

import (
	"errors"
	"time"

	"hospital-scheduling/internal/domain/entity"
)

var (
	ErrInvalidDay       = errors.New("invalid day selected")
	ErrInvalidStartTime = errors.New("invalid start time")
	ErrInvalidEndTime   = errors.New("invalid end time")
	ErrEndNotAfterStart = errors.New("end time must be after start time")
)

// Window is a validated same-day availability interval
type Window struct {
	Day   entity.Weekday
	Start string
	End   string
}

// IsEndAfterStart reports whether end is strictly later than start on the same day.
// Both values are canonical HH:MM:SS; malformed input yields false.
func IsEndAfterStart(start, end string) bool {
	s, err := time.Parse(CanonicalLayout, start)
	if err != nil {
		return false
	}
	e, err := time.Parse(CanonicalLayout, end)
	if err != nil {
		return false
	}
	return e.After(s)
}

// ValidateTimes parses raw start/end input and checks ordering.
func ValidateTimes(rawStart, rawEnd string) (string, string, error) {
	start, err := ParseTime(rawStart)
	if err != nil {
		return "", "", ErrInvalidStartTime
	}
	end, err := ParseTime(rawEnd)
	if err != nil {
		return "", "", ErrInvalidEndTime
	}
	if !IsEndAfterStart(start, end) {
		return "", "", ErrEndNotAfterStart
	}
	return start, end, nil
}

// ValidateWindow checks a day name and a raw start/end pair.
func ValidateWindow(rawDay, rawStart, rawEnd string) (Window, error) {
	day, ok := entity.ParseWeekday(rawDay)
	if !ok {
		return Window{}, ErrInvalidDay
	}
	start, end, err := ValidateTimes(rawStart, rawEnd)
	if err != nil {
		return Window{}, err
	}
	return Window{Day: day, Start: start, End: end}, nil
}
