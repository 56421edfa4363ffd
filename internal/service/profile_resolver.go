package service

import (
	"fmt"

	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"

	"gorm.io/gorm"
)

// Profile is the role-specific part of a user. Exactly one field is set,
// or none for roles without a profile table.
type Profile struct {
	Doctor  *entity.DoctorProfile
	Patient *entity.PatientProfile
}

// ProfileResolver loads the profile that belongs to a user's role.
type ProfileResolver interface {
	Resolve(db *gorm.DB, user *entity.User) (Profile, error)
}

type profileResolver struct {
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
}

func NewProfileResolver(doctorProfileRepo repository.DoctorProfileRepository, patientProfileRepo repository.PatientProfileRepository) ProfileResolver {
	return &profileResolver{
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
	}
}

func (r *profileResolver) Resolve(db *gorm.DB, user *entity.User) (Profile, error) {
	switch user.RoleID {
	case entity.RoleDoctor:
		p, err := r.doctorProfileRepo.FindByUserID(db, user.ID)
		if err != nil {
			return Profile{}, fmt.Errorf("find doctor profile: %w", err)
		}
		return Profile{Doctor: p}, nil
	case entity.RolePatient:
		p, err := r.patientProfileRepo.FindByUserID(db, user.ID)
		if err != nil {
			return Profile{}, fmt.Errorf("find patient profile: %w", err)
		}
		return Profile{Patient: p}, nil
	case entity.RoleAdmin, entity.RoleReceptionist:
		return Profile{}, nil
	default:
		return Profile{}, fmt.Errorf("unknown role %d", user.RoleID)
	}
}
