package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hospital-scheduling/internal/domain/entity"
)

var (
	ErrDoctorRequired   = errors.New("doctor is required to build a slot grid")
	ErrInvalidGridRange = errors.New("invalid slot grid range")
	ErrInvalidGridStep  = errors.New("slot grid step must be positive")
)

// GridOptions bounds the operating window of a slot grid
type GridOptions struct {
	RangeStart  string
	RangeEnd    string
	StepMinutes int
}

func DefaultGridOptions() GridOptions {
	return GridOptions{
		RangeStart:  "09:00",
		RangeEnd:    "17:00",
		StepMinutes: 30,
	}
}

// Validate checks that the range parses, is ordered and has a positive step.
func (o GridOptions) Validate() error {
	_, _, err := o.bounds()
	return err
}

func (o GridOptions) bounds() (time.Time, time.Time, error) {
	if o.StepMinutes <= 0 {
		return time.Time{}, time.Time{}, ErrInvalidGridStep
	}
	start, err := parseClock(o.RangeStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseClock(o.RangeEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s is before %s", ErrInvalidGridRange, o.RangeEnd, o.RangeStart)
	}
	return start, end, nil
}

// ClassifyStatus maps an appointment status to the state it gives its slot.
// Released statuses leave the slot free.
func ClassifyStatus(status string) entity.SlotState {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "":
		return entity.SlotFree
	case "pending", "awaiting", "hold":
		return entity.SlotPending
	}
	if entity.AppointmentStatus(s).IsReleased() {
		return entity.SlotFree
	}
	return entity.SlotBooked
}

// BuildGrid lays out every point from RangeStart to RangeEnd inclusive and tags it
// with the state of the doctor's appointments on that date at exactly that time.
// Appointments of other doctors or other dates are ignored.
func BuildGrid(doctorID uuid.UUID, date time.Time, opts GridOptions, appts []entity.Appointment) ([]entity.TimeSlot, error) {
	if doctorID == uuid.Nil {
		return nil, ErrDoctorRequired
	}

	start, end, err := opts.bounds()
	if err != nil {
		return nil, err
	}

	occupied := occupancy(doctorID, date, appts)

	step := time.Duration(opts.StepMinutes) * time.Minute
	slots := make([]entity.TimeSlot, 0, int(end.Sub(start)/step)+1)
	for t := start; !t.After(end); t = t.Add(step) {
		label := t.Format(CanonicalLayout)
		slot := entity.TimeSlot{Time: label, State: entity.SlotFree}
		if o, ok := occupied[label]; ok {
			appointmentID := o.appointmentID
			slot.State = o.state
			slot.Occupant = &appointmentID
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

type occupant struct {
	state         entity.SlotState
	appointmentID uuid.UUID
}

// occupancy indexes the relevant appointments by canonical time; booked dominates pending.
func occupancy(doctorID uuid.UUID, date time.Time, appts []entity.Appointment) map[string]occupant {
	y, m, d := date.Date()
	out := make(map[string]occupant)
	for _, a := range appts {
		if a.DoctorID != doctorID {
			continue
		}
		ay, am, ad := a.AppointmentDate.Date()
		if ay != y || am != m || ad != d {
			continue
		}
		state := ClassifyStatus(string(a.Status))
		if state == entity.SlotFree {
			continue
		}
		label, err := ParseTime(a.AppointmentTime)
		if err != nil {
			continue
		}
		if cur, ok := out[label]; ok && cur.state == entity.SlotBooked {
			continue
		}
		out[label] = occupant{state: state, appointmentID: a.ID}
	}
	return out
}

func parseClock(s string) (time.Time, error) {
	canonical, err := ParseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidGridRange, err)
	}
	return time.Parse(CanonicalLayout, canonical)
}
