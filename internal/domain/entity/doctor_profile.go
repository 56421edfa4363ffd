package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Department      string          `gorm:"type:varchar(100);index" json:"department,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	Biography       string          `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User           User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Availabilities []AvailabilityWindow `gorm:"foreignKey:DoctorID" json:"availabilities,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
