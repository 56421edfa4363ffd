package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

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

var (
	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrDuplicateDay         = errors.New("availability for this day already exists")

	ErrInvalidDay       = scheduling.ErrInvalidDay
	ErrInvalidStartTime = scheduling.ErrInvalidStartTime
	ErrInvalidEndTime   = scheduling.ErrInvalidEndTime
	ErrEndNotAfterStart = scheduling.ErrEndNotAfterStart
)

type AvailabilityUsecase interface {
	AddAvailability(ctx context.Context, actor entity.Actor, req *dto.AddAvailabilityRequest) (*dto.AvailabilityResponse, error)
	UpdateAvailability(ctx context.Context, actor entity.Actor, availabilityID int, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	DeleteAvailability(ctx context.Context, actor entity.Actor, availabilityID int) error
	GetMyAvailability(ctx context.Context, actor entity.Actor) (*dto.AvailabilityListResponse, error)
	GetDoctorAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error)
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	availabilityRepo repository.AvailabilityRepository
	auditService     service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	availabilityRepo repository.AvailabilityRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		availabilityRepo: availabilityRepo,
		auditService:     auditService,
	}
}

func (u *availabilityUsecase) AddAvailability(ctx context.Context, actor entity.Actor, req *dto.AddAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if !actor.Is(entity.RoleDoctor) {
		return nil, ErrForbiddenRole
	}

	window, err := scheduling.ValidateWindow(req.Day, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	existing, err := u.availabilityRepo.FindByDoctorAndDay(tx, actor.UserID, window.Day)
	if err != nil {
		u.log.Errorf("Failed to check existing availability: %+v", err)
		return nil, err
	}
	if existing != nil {
		u.log.Warnf("Doctor %s already has availability on %s", actor.UserID, window.Day)
		return nil, ErrDuplicateDay
	}

	active := true
	availability := &entity.AvailabilityWindow{
		DoctorID:  actor.UserID,
		DayOfWeek: window.Day,
		StartTime: window.Start,
		EndTime:   window.End,
		IsActive:  &active,
	}

	if err := u.availabilityRepo.Create(tx, availability); err != nil {
		if isDuplicateKeyError(err, constraintAvailabilityDay) {
			return nil, ErrDuplicateDay
		}
		u.log.Errorf("Failed to create availability: %+v", err)
		return nil, err
	}

	resp := converter.AvailabilityToResponse(availability)
	if err := u.auditService.LogCreate(ctx, tx, &actor.UserID, entity.AuditActionAvailabilityCreate,
		entity.AuditEntityAvailability, strconv.Itoa(availability.ID), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit availability: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor %s added availability %d on %s", actor.UserID, availability.ID, window.Day)
	return resp, nil
}

func (u *availabilityUsecase) UpdateAvailability(ctx context.Context, actor entity.Actor, availabilityID int, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if !actor.Is(entity.RoleDoctor) {
		return nil, ErrForbiddenRole
	}

	start, end, err := scheduling.ValidateTimes(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	old, err := u.availabilityRepo.FindByIDAndDoctor(tx, availabilityID, actor.UserID)
	if err != nil {
		u.log.Errorf("Failed to find availability: %+v", err)
		return nil, err
	}
	if old == nil {
		return nil, ErrAvailabilityNotFound
	}

	affected, err := u.availabilityRepo.UpdateTimes(tx, actor.UserID, availabilityID, start, end)
	if err != nil {
		u.log.Errorf("Failed to update availability: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAvailabilityNotFound
	}

	updated, err := u.availabilityRepo.FindByIDAndDoctor(tx, availabilityID, actor.UserID)
	if err != nil {
		u.log.Errorf("Failed to reload availability %d: %+v", availabilityID, err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrAvailabilityNotFound
	}

	resp := converter.AvailabilityToResponse(updated)
	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, entity.AuditActionAvailabilityUpdate,
		entity.AuditEntityAvailability, strconv.Itoa(availabilityID),
		converter.AvailabilityToResponse(old), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit availability update: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *availabilityUsecase) DeleteAvailability(ctx context.Context, actor entity.Actor, availabilityID int) error {
	if !actor.Is(entity.RoleDoctor) {
		return ErrForbiddenRole
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	old, err := u.availabilityRepo.FindByIDAndDoctor(tx, availabilityID, actor.UserID)
	if err != nil {
		u.log.Errorf("Failed to find availability: %+v", err)
		return err
	}
	if old == nil {
		return ErrAvailabilityNotFound
	}

	// Appointments are independent of the window and stay untouched.
	affected, err := u.availabilityRepo.Delete(tx, actor.UserID, availabilityID)
	if err != nil {
		u.log.Errorf("Failed to delete availability: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrAvailabilityNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.UserID, entity.AuditActionAvailabilityDelete,
		entity.AuditEntityAvailability, strconv.Itoa(availabilityID), converter.AvailabilityToResponse(old)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit availability delete: %+v", err)
		return err
	}

	return nil
}

func (u *availabilityUsecase) GetMyAvailability(ctx context.Context, actor entity.Actor) (*dto.AvailabilityListResponse, error) {
	if !actor.Is(entity.RoleDoctor) {
		return nil, ErrForbiddenRole
	}
	return u.GetDoctorAvailability(ctx, actor.UserID)
}

func (u *availabilityUsecase) GetDoctorAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	windows, err := u.availabilityRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Errorf("Failed to list availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	responses := converter.AvailabilitiesToResponses(windows)
	return &dto.AvailabilityListResponse{
		Availabilities: responses,
		Total:          len(responses),
	}, nil
}
