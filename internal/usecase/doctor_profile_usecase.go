package usecase

import (
	"context"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DoctorProfileUsecase is the read side of the doctor directory used when booking.
type DoctorProfileUsecase interface {
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
}

type doctorProfileUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
	availabilityRepo  repository.AvailabilityRepository
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	availabilityRepo repository.AvailabilityRepository,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
		availabilityRepo:  availabilityRepo,
	}
}

func (u *doctorProfileUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Errorf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if profile == nil || !profile.User.Active() {
		return nil, ErrDoctorNotFound
	}

	windows, err := u.availabilityRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Errorf("Failed to list availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	profile.Availabilities = windows

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Errorf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}
