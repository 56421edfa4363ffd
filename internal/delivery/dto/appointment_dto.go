package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string    `json:"time" validate:"required,timeofday"`
	Notes    string    `json:"notes" validate:"omitempty,max=500"`
}

type RescheduleAppointmentRequest struct {
	NewDate string `json:"new_date" validate:"required,datetime=2006-01-02"`
	NewTime string `json:"new_time" validate:"required,timeofday"`
}

// AppointmentListQuery carries the optional filters of a doctor's listing
type AppointmentListQuery struct {
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled rejected completed"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        uuid.UUID       `json:"id"`
	DoctorID  uuid.UUID       `json:"doctor_id"`
	PatientID uuid.UUID       `json:"patient_id"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Status    string          `json:"status"`
	Notes     string          `json:"notes,omitempty"`
	Fee       decimal.Decimal `json:"fee"`
	Doctor    *DoctorSummary  `json:"doctor,omitempty"`
	Patient   *PatientSummary `json:"patient,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
