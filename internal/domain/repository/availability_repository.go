package repository

import (
	"hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityRepository stores weekly availability windows.
// Writes are scoped by doctor id in the WHERE clause; callers read RowsAffected.
type AvailabilityRepository interface {
	Create(db *gorm.DB, window *entity.AvailabilityWindow) error
	FindByIDAndDoctor(db *gorm.DB, id int, doctorID uuid.UUID) (*entity.AvailabilityWindow, error)
	FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, day entity.Weekday) (*entity.AvailabilityWindow, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityWindow, error)
	UpdateTimes(db *gorm.DB, doctorID uuid.UUID, id int, start, end string) (int64, error)
	Delete(db *gorm.DB, doctorID uuid.UUID, id int) (int64, error)
}
