package repository

import (
	"time"

	"hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	FindByDoctor(db *gorm.DB, doctorID uuid.UUID, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	CountActiveAt(db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string, excludeID *uuid.UUID) (int64, error)
	Reschedule(db *gorm.DB, doctorID, id uuid.UUID, date time.Time, clock string) (int64, error)
	UpdateStatusForDoctor(db *gorm.DB, doctorID, id uuid.UUID, from []string, to entity.AppointmentStatus) (int64, error)
	UpdateStatusForPatient(db *gorm.DB, patientID, id uuid.UUID, from []string, to entity.AppointmentStatus) (int64, error)
}
