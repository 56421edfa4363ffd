package dto

import (
	"github.com/google/uuid"
)

// SlotResponse exposes the occupying appointment id, not who booked it
type SlotResponse struct {
	TimeLabel string     `json:"time_label"`
	State     string     `json:"state"`
	Occupant  *uuid.UUID `json:"occupant,omitempty"`
}

// SlotGridResponse is the day grid of one doctor. DeclaredWindow is the doctor's
// availability for that weekday, if any; it does not bound the grid.
type SlotGridResponse struct {
	DoctorID       uuid.UUID             `json:"doctor_id"`
	Date           string                `json:"date"`
	Day            string                `json:"day"`
	DeclaredWindow *AvailabilityResponse `json:"declared_window,omitempty"`
	Slots          []SlotResponse        `json:"slots"`
}
