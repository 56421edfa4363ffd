package usecase

import (
	"context"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"
	"hospital-scheduling/internal/domain/scheduling"
	"hospital-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDoctorRequired = scheduling.ErrDoctorRequired

type SlotGridUsecase interface {
	GetSlotGrid(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotGridResponse, error)
}

type slotGridUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	appointmentRepo   repository.AppointmentRepository
	availabilityRepo  repository.AvailabilityRepository
	doctorProfileRepo repository.DoctorProfileRepository
	slotCache         *service.SlotCacheService
	gridOptions       scheduling.GridOptions
}

func NewSlotGridUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	availabilityRepo repository.AvailabilityRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	slotCache *service.SlotCacheService,
	gridOptions scheduling.GridOptions,
) SlotGridUsecase {
	return &slotGridUsecase{
		db:                db,
		log:               log,
		appointmentRepo:   appointmentRepo,
		availabilityRepo:  availabilityRepo,
		doctorProfileRepo: doctorProfileRepo,
		slotCache:         slotCache,
		gridOptions:       gridOptions,
	}
}

// GetSlotGrid derives the day grid of a doctor. The grid always spans the configured
// operating window; the doctor's declared window for the weekday is attached as is.
func (u *slotGridUsecase) GetSlotGrid(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotGridResponse, error) {
	if doctorID == uuid.Nil {
		return nil, ErrDoctorRequired
	}

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Errorf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	weekday := entity.WeekdayOf(day)
	resp := &dto.SlotGridResponse{
		DoctorID: doctorID,
		Date:     day.Format(dateLayout),
		Day:      string(weekday),
	}

	window, err := u.availabilityRepo.FindByDoctorAndDay(db, doctorID, weekday)
	if err != nil {
		u.log.Errorf("Failed to find declared availability: %+v", err)
		return nil, err
	}
	if window != nil && window.Active() {
		resp.DeclaredWindow = converter.AvailabilityToResponse(window)
	}

	slots, found, err := u.slotCache.Get(ctx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to read slot grid cache: %+v", err)
	}
	if found {
		resp.Slots = converter.SlotsToResponses(slots)
		return resp, nil
	}

	// taken before the read so a concurrent invalidation wins
	version, versionErr := u.slotCache.Version(ctx, doctorID, day)
	if versionErr != nil {
		u.log.Warnf("Failed to read slot grid version: %+v", versionErr)
	}

	appts, err := u.appointmentRepo.FindByDoctorAndDate(db, doctorID, day)
	if err != nil {
		u.log.Errorf("Failed to load appointments for grid: %+v", err)
		return nil, err
	}

	slots, err = scheduling.BuildGrid(doctorID, day, u.gridOptions, appts)
	if err != nil {
		u.log.Errorf("Failed to build slot grid: %+v", err)
		return nil, err
	}

	if versionErr == nil {
		if err := u.slotCache.Set(ctx, doctorID, day, version, slots); err != nil {
			u.log.Warnf("Failed to write slot grid cache: %+v", err)
		}
	}

	resp.Slots = converter.SlotsToResponses(slots)
	return resp, nil
}
