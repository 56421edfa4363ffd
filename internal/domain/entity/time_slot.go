package entity

import "github.com/google/uuid"

// SlotState is the occupancy of a derived grid slot
type SlotState string

const (
	SlotFree    SlotState = "free"
	SlotPending SlotState = "pending"
	SlotBooked  SlotState = "booked"
)

// TimeSlot is one point of a slot grid. It is derived on each request and never stored.
// Occupant is the id of the appointment holding the slot.
type TimeSlot struct {
	Time     string     `json:"time_label"`
	State    SlotState  `json:"state"`
	Occupant *uuid.UUID `json:"occupant,omitempty"`
}
