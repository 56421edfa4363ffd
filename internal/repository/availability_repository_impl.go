package repository

import (
	"errors"

	"hospital-scheduling/internal/domain/entity"
	domainRepo "hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// weekdayOrder sorts day names Monday..Sunday instead of alphabetically
const weekdayOrder = `CASE day_of_week
	WHEN 'Monday' THEN 1
	WHEN 'Tuesday' THEN 2
	WHEN 'Wednesday' THEN 3
	WHEN 'Thursday' THEN 4
	WHEN 'Friday' THEN 5
	WHEN 'Saturday' THEN 6
	WHEN 'Sunday' THEN 7
	ELSE 8 END`

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) Create(db *gorm.DB, window *entity.AvailabilityWindow) error {
	return db.Create(window).Error
}

func (r *availabilityRepository) FindByIDAndDoctor(db *gorm.DB, id int, doctorID uuid.UUID) (*entity.AvailabilityWindow, error) {
	var window entity.AvailabilityWindow
	err := db.Where("id = ? AND doctor_id = ?", id, doctorID).First(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &window, nil
}

func (r *availabilityRepository) FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, day entity.Weekday) (*entity.AvailabilityWindow, error) {
	var window entity.AvailabilityWindow
	err := db.Where("doctor_id = ? AND day_of_week = ?", doctorID, day).First(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &window, nil
}

func (r *availabilityRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityWindow, error) {
	var windows []entity.AvailabilityWindow
	err := db.Where("doctor_id = ?", doctorID).
		Order(weekdayOrder).
		Order("start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

// UpdateTimes changes start/end of a window owned by doctorID.
// Returns affected rows: 0 means no such window for this doctor.
func (r *availabilityRepository) UpdateTimes(db *gorm.DB, doctorID uuid.UUID, id int, start, end string) (int64, error) {
	result := db.Model(&entity.AvailabilityWindow{}).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		Updates(map[string]interface{}{
			"start_time": start,
			"end_time":   end,
		})
	return result.RowsAffected, result.Error
}

func (r *availabilityRepository) Delete(db *gorm.DB, doctorID uuid.UUID, id int) (int64, error) {
	result := db.Where("id = ? AND doctor_id = ?", id, doctorID).Delete(&entity.AvailabilityWindow{})
	return result.RowsAffected, result.Error
}
