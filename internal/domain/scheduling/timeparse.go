// Package scheduling holds the pure rules of the availability and slot model:
// time-of-day normalisation, window validation and slot grid derivation.
package scheduling

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

// CanonicalLayout is the only time-of-day representation used after parsing.
const CanonicalLayout = "15:04:05"

var (
	ErrEmptyTime        = errors.New("time is empty")
	ErrUnrecognizedTime = errors.New("unrecognized time format")
)

var (
	// 14:30, 09:05:59
	time24h = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	// 2:30 pm, 02:30:00PM
	time12h = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(am|pm)$`)
	// 9am, 9 pm
	timeHourAMPM = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)$`)
	// 1430, 930
	timeCompact = regexp.MustCompile(`^(\d{1,2})(\d{2})$`)
	// a clock inside a longer date/time value
	embeddedClock = regexp.MustCompile(`\d{1,2}:\d{2}`)
)

// ParseTime normalises a human-entered time of day into canonical HH:MM:SS.
//
// Accepted: "HH:MM", "HH:MM:SS", "H:MM[:SS] AM/PM" in any case, "H AM/PM" and
// compact 24-hour "HHMM"/"HMM". Anything else gets one generic date/time parse
// attempt whose clock part is kept, provided the input spells out a clock.
// 12:00 AM is midnight, 12:00 PM is noon.
func ParseTime(s string) (string, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return "", ErrEmptyTime
	}
	s = strings.ToLower(raw)

	if m := time24h.FindStringSubmatch(s); m != nil {
		return clock24(m[1], m[2], m[3])
	}

	if m := time12h.FindStringSubmatch(s); m != nil {
		return clock12(m[1], m[2], m[3], m[4])
	}

	if m := timeHourAMPM.FindStringSubmatch(s); m != nil {
		return clock12(m[1], "0", "", m[2])
	}

	if m := timeCompact.FindStringSubmatch(s); m != nil {
		return clock24(m[1], m[2], "")
	}

	// a bare date would otherwise come back as midnight
	if !embeddedClock.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedTime, raw)
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedTime, raw)
	}
	return t.Format(CanonicalLayout), nil
}

// MustParseTime is ParseTime for trusted constants; it panics on bad input.
func MustParseTime(s string) string {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func clock24(hourStr, minStr, secStr string) (string, error) {
	hour, minute, second, err := atoiClock(hourStr, minStr, secStr)
	if err != nil {
		return "", err
	}
	if hour > 23 {
		return "", fmt.Errorf("%w: hour %d out of range", ErrUnrecognizedTime, hour)
	}
	return format(hour, minute, second), nil
}

func clock12(hourStr, minStr, secStr, meridiem string) (string, error) {
	hour, minute, second, err := atoiClock(hourStr, minStr, secStr)
	if err != nil {
		return "", err
	}
	if hour < 1 || hour > 12 {
		return "", fmt.Errorf("%w: hour %d out of range for 12-hour format", ErrUnrecognizedTime, hour)
	}

	switch {
	case meridiem == "am" && hour == 12:
		hour = 0
	case meridiem == "pm" && hour != 12:
		hour += 12
	}
	return format(hour, minute, second), nil
}

func atoiClock(hourStr, minStr, secStr string) (int, int, int, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrUnrecognizedTime, err)
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrUnrecognizedTime, err)
	}
	second := 0
	if secStr != "" {
		second, err = strconv.Atoi(secStr)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %v", ErrUnrecognizedTime, err)
		}
	}
	if minute > 59 {
		return 0, 0, 0, fmt.Errorf("%w: minute %d out of range", ErrUnrecognizedTime, minute)
	}
	if second > 59 {
		return 0, 0, 0, fmt.Errorf("%w: second %d out of range", ErrUnrecognizedTime, second)
	}
	return hour, minute, second, nil
}

func format(hour, minute, second int) string {
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
}
