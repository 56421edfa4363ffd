package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfileResponse is the doctor part of a user profile
type DoctorProfileResponse struct {
	LicenseNumber   string          `json:"license_number"`
	Specialization  string          `json:"specialization"`
	Department      string          `json:"department,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Biography       string          `json:"biography,omitempty"`
}

// DoctorResponse is a doctor as listed to patients, with the weekly availability
type DoctorResponse struct {
	ID              uuid.UUID              `json:"id"`
	FullName        string                 `json:"full_name"`
	Specialization  string                 `json:"specialization"`
	Department      string                 `json:"department,omitempty"`
	ConsultationFee decimal.Decimal        `json:"consultation_fee"`
	Availabilities  []AvailabilityResponse `json:"availabilities"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

// DoctorSummary is the doctor embedded in a patient's appointment
type DoctorSummary struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	Specialization string    `json:"specialization"`
}
