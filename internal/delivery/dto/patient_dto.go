package dto

import (
	"github.com/google/uuid"
)

// PatientProfileResponse represents patient profile data in responses
type PatientProfileResponse struct {
	UserID              uuid.UUID `json:"user_id"`
	MedicalRecordNumber string    `json:"medical_record_number"`
	PhoneNumber         string    `json:"phone_number,omitempty"`
	DateOfBirth         string    `json:"date_of_birth"`
	Gender              string    `json:"gender"`
	Address             string    `json:"address,omitempty"`
}

// PatientSummary is the patient embedded in a doctor's appointment list
type PatientSummary struct {
	ID                  uuid.UUID `json:"id"`
	FullName            string    `json:"full_name"`
	MedicalRecordNumber string    `json:"medical_record_number"`
	PhoneNumber         string    `json:"phone_number,omitempty"`
}
