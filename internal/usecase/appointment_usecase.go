package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

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
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrSlotAlreadyBooked       = errors.New("this time slot is already booked")
	ErrInvalidStatusTransition = errors.New("appointment status does not allow this action")
	ErrInvalidStatusFilter     = errors.New("invalid appointment status")
)

// AppointmentUsecase holds the doctor-side appointment operations.
// Every operation is scoped to appointments of the acting doctor.
type AppointmentUsecase interface {
	GetDoctorAppointments(ctx context.Context, actor entity.Actor, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error)
	ConfirmAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	conflictChecker service.ConflictChecker
	auditService    service.AuditService
	slotCache       *service.SlotCacheService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	conflictChecker service.ConflictChecker,
	auditService service.AuditService,
	slotCache *service.SlotCacheService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		conflictChecker: conflictChecker,
		auditService:    auditService,
		slotCache:       slotCache,
	}
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, actor entity.Actor, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error) {
	if !actor.Is(entity.RoleDoctor) {
		return nil, ErrForbiddenRole
	}

	var filter entity.AppointmentFilter
	if query != nil {
		if query.Date != "" {
			d, err := parseDate(query.Date)
			if err != nil {
				return nil, err
			}
			filter.Date = &d
		}
		if query.Status != "" {
			status, ok := entity.ParseAppointmentStatus(query.Status)
			if !ok {
				return nil, ErrInvalidStatusFilter
			}
			filter.Status = status
		}
	}

	appts, err := u.appointmentRepo.FindByDoctor(u.db.WithContext(ctx), actor.UserID, filter)
	if err != nil {
		u.log.Errorf("Failed to list appointments for doctor %s: %+v", actor.UserID, err)
		return nil, err
	}

	responses := converter.AppointmentsToResponses(appts)
	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

// ConfirmAppointment accepts a Pending appointment
func (u *appointmentUsecase) ConfirmAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actor, appointmentID,
		[]string{string(entity.AppointmentStatusPending)},
		entity.AppointmentStatusConfirmed,
		entity.AuditActionAppointmentConfirm)
}

// CancelAppointment cancels a Pending or Confirmed appointment and frees its slot
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actor, appointmentID,
		entity.ActiveAppointmentStatuses,
		entity.AppointmentStatusCancelled,
		entity.AuditActionAppointmentCancel)
}

func (u *appointmentUsecase) transition(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, from []string, to entity.AppointmentStatus, action string) (*dto.AppointmentResponse, error) {
	if !actor.Is(entity.RoleDoctor) {
		return nil, ErrForbiddenRole
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	appt, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Errorf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appt == nil || appt.DoctorID != actor.UserID {
		return nil, ErrAppointmentNotFound
	}

	affected, err := u.appointmentRepo.UpdateStatusForDoctor(tx, actor.UserID, appointmentID, from, to)
	if err != nil {
		u.log.Errorf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	if affected == 0 {
		u.log.Warnf("Appointment %s is %s, cannot move to %s", appointmentID, appt.Status, to)
		return nil, ErrInvalidStatusTransition
	}

	oldStatus := appt.Status.Normalize()
	appt.Status = to

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, action,
		entity.AuditEntityAppointment, appointmentID.String(),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": to}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit appointment status: %+v", err)
		return nil, err
	}

	invalidateGrid(ctx, u.log, u.slotCache, appt.DoctorID, appt.AppointmentDate)
	u.log.Infof("Appointment %s moved from %s to %s by doctor %s", appointmentID, oldStatus, to, actor.UserID)

	return converter.AppointmentToResponse(appt), nil
}

// RescheduleAppointment moves an appointment to a new date and time and re-confirms it.
// The move is rejected when another active appointment holds the target slot.
func (u *appointmentUsecase) RescheduleAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !actor.Is(entity.RoleDoctor) {
		return nil, ErrForbiddenRole
	}

	newDate, err := parseDate(req.NewDate)
	if err != nil {
		return nil, err
	}
	newTime, err := scheduling.ParseTime(req.NewTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	appt, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Errorf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appt == nil || appt.DoctorID != actor.UserID {
		return nil, ErrAppointmentNotFound
	}

	conflict, err := u.conflictChecker.HasConflict(tx, actor.UserID, newDate, newTime, &appointmentID)
	if err != nil {
		u.log.Errorf("Failed to check slot conflict: %+v", err)
		return nil, err
	}
	if conflict {
		u.log.Warnf("Reschedule of %s rejected: %s %s is taken", appointmentID, req.NewDate, newTime)
		return nil, ErrSlotAlreadyBooked
	}

	affected, err := u.appointmentRepo.Reschedule(tx, actor.UserID, appointmentID, newDate, newTime)
	if err != nil {
		if isDuplicateKeyError(err, constraintAppointmentActive) {
			return nil, ErrSlotAlreadyBooked
		}
		u.log.Errorf("Failed to reschedule appointment: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAppointmentNotFound
	}

	oldDate := appt.AppointmentDate
	oldValue := map[string]interface{}{
		"date":   oldDate.Format(dateLayout),
		"time":   appt.AppointmentTime,
		"status": appt.Status.Normalize(),
	}
	newValue := map[string]interface{}{
		"date":   newDate.Format(dateLayout),
		"time":   newTime,
		"status": entity.AppointmentStatusConfirmed,
	}
	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, entity.AuditActionAppointmentReschedule,
		entity.AuditEntityAppointment, appointmentID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit reschedule: %+v", err)
		return nil, err
	}

	appt.AppointmentDate = newDate
	appt.AppointmentTime = newTime
	appt.Status = entity.AppointmentStatusConfirmed

	invalidateGrid(ctx, u.log, u.slotCache, appt.DoctorID, oldDate, newDate)
	u.log.Infof("Appointment %s rescheduled to %s %s", appointmentID, req.NewDate, newTime)

	return converter.AppointmentToResponse(appt), nil
}

// invalidateGrid drops cached grids after a committed change; failures are only logged.
func invalidateGrid(ctx context.Context, log *logrus.Logger, cache *service.SlotCacheService, doctorID uuid.UUID, dates ...time.Time) {
	if err := cache.Invalidate(ctx, doctorID, dates...); err != nil {
		log.Warnf("Failed to invalidate slot grid cache: %+v", err)
	}
}
