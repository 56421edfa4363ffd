package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment.
// Stored lowercase; legacy rows may differ in case, so queries compare with LOWER().
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// ActiveAppointmentStatuses occupy a slot and block other bookings.
var ActiveAppointmentStatuses = []string{
	string(AppointmentStatusPending),
	string(AppointmentStatusConfirmed),
}

// ReleasedAppointmentStatuses never occupy a slot.
var ReleasedAppointmentStatuses = []string{
	string(AppointmentStatusCancelled),
	string(AppointmentStatusRejected),
}

// Normalize trims and lowercases the status
func (s AppointmentStatus) Normalize() AppointmentStatus {
	return AppointmentStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// ParseAppointmentStatus matches s case-insensitively against the known statuses.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(s).Normalize()
	switch status {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCancelled,
		AppointmentStatusRejected, AppointmentStatusCompleted:
		return status, true
	}
	return "", false
}

// IsActive reports whether the status is Pending or Confirmed
func (s AppointmentStatus) IsActive() bool {
	switch s.Normalize() {
	case AppointmentStatusPending, AppointmentStatusConfirmed:
		return true
	}
	return false
}

// IsReleased reports whether the status is Cancelled or Rejected
func (s AppointmentStatus) IsReleased() bool {
	switch s.Normalize() {
	case AppointmentStatusCancelled, AppointmentStatusRejected:
		return true
	}
	return false
}

// Appointment is a patient's visit with a doctor at a date and time-of-day.
// AppointmentTime holds a canonical HH:MM:SS value.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_doctor_slot" json:"doctor_id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index:idx_appointments_doctor_slot" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:char(8);not null;index:idx_appointments_doctor_slot" json:"appointment_time"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	Fee             decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"fee"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  *DoctorProfile  `gorm:"foreignKey:DoctorID;references:UserID" json:"doctor,omitempty"`
	Patient *PatientProfile `gorm:"foreignKey:PatientID;references:UserID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsPending checks if appointment is awaiting the doctor's decision
func (a *Appointment) IsPending() bool {
	return a.Status.Normalize() == AppointmentStatusPending
}

// IsConfirmed checks if appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status.Normalize() == AppointmentStatusConfirmed
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status.Normalize() == AppointmentStatusCancelled
}

// AppointmentFilter narrows a doctor's appointment listing.
// Zero values mean no filter.
type AppointmentFilter struct {
	Date   *time.Time
	Status AppointmentStatus
}
