package repository

import (
	"errors"
	"time"

	"hospital-scheduling/internal/domain/entity"
	domainRepo "hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Doctor", "Patient").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindByDoctorAndDate returns every appointment of the doctor on date, whatever its status.
func (r *appointmentRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_id = ? AND appointment_date = ?", doctorID, date).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctor(db *gorm.DB, doctorID uuid.UUID, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Patient.User").Where("doctor_id = ?", doctorID)

	if filter.Date != nil {
		query = query.Where("appointment_date = ?", *filter.Date)
	}
	if filter.Status != "" {
		query = query.Where("LOWER(status) = ?", string(filter.Status.Normalize()))
	}

	err := query.Order("appointment_date ASC, appointment_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// CountActiveAt counts Pending/Confirmed appointments occupying (doctor, date, clock).
// excludeID leaves one appointment out of the count, typically the one being moved.
func (r *appointmentRepository) CountActiveAt(db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string, excludeID *uuid.UUID) (int64, error) {
	var count int64
	query := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ?", doctorID, date, clock).
		Where("LOWER(status) IN ?", entity.ActiveAppointmentStatuses)

	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Reschedule moves an appointment owned by doctorID and re-confirms it.
// Returns affected rows: 0 means no such appointment for this doctor.
func (r *appointmentRepository) Reschedule(db *gorm.DB, doctorID, id uuid.UUID, date time.Time, clock string) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		Updates(map[string]interface{}{
			"appointment_date": date,
			"appointment_time": clock,
			"status":           entity.AppointmentStatusConfirmed,
		})
	return result.RowsAffected, result.Error
}

// UpdateStatusForDoctor transitions status ONLY if the current status is one of from.
// Returns affected rows: 1 = success, 0 = not owned or not in an allowed state.
func (r *appointmentRepository) UpdateStatusForDoctor(db *gorm.DB, doctorID, id uuid.UUID, from []string, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND doctor_id = ? AND LOWER(status) IN ?", id, doctorID, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) UpdateStatusForPatient(db *gorm.DB, patientID, id uuid.UUID, from []string, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND patient_id = ? AND LOWER(status) IN ?", id, patientID, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}
