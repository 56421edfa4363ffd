package service

import (
	"fmt"
	"time"

	"hospital-scheduling/internal/domain/repository"
	"hospital-scheduling/internal/domain/scheduling"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConflictChecker answers whether an active appointment already occupies a slot.
type ConflictChecker interface {
	HasConflict(db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string, excludeID *uuid.UUID) (bool, error)
}

type conflictChecker struct {
	appointmentRepo repository.AppointmentRepository
}

func NewConflictChecker(appointmentRepo repository.AppointmentRepository) ConflictChecker {
	return &conflictChecker{appointmentRepo: appointmentRepo}
}

// HasConflict counts Pending/Confirmed appointments at (doctor, date, clock),
// leaving excludeID out. clock may be in any format ParseTime accepts.
func (c *conflictChecker) HasConflict(db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string, excludeID *uuid.UUID) (bool, error) {
	canonical, err := scheduling.ParseTime(clock)
	if err != nil {
		return false, err
	}

	count, err := c.appointmentRepo.CountActiveAt(db, doctorID, date, canonical, excludeID)
	if err != nil {
		return false, fmt.Errorf("count active appointments: %w", err)
	}
	return count > 0, nil
}
