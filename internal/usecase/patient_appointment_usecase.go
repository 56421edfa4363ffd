package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
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
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient profile not found")
	ErrDateInPast      = errors.New("appointment date is in the past")
)

type PatientAppointmentUsecase interface {
	BookAppointment(ctx context.Context, actor entity.Actor, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error)
	CancelMyAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
}

type patientAppointmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	appointmentRepo    repository.AppointmentRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	conflictChecker    service.ConflictChecker
	auditService       service.AuditService
	slotCache          *service.SlotCacheService
	now                func() time.Time
}

func NewPatientAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	conflictChecker service.ConflictChecker,
	auditService service.AuditService,
	slotCache *service.SlotCacheService,
) PatientAppointmentUsecase {
	return &patientAppointmentUsecase{
		db:                 db,
		log:                log,
		appointmentRepo:    appointmentRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		conflictChecker:    conflictChecker,
		auditService:       auditService,
		slotCache:          slotCache,
		now:                time.Now,
	}
}

// BookAppointment creates a Pending appointment in a free slot.
// The fee is the doctor's consultation fee at booking time.
func (u *patientAppointmentUsecase) BookAppointment(ctx context.Context, actor entity.Actor, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !actor.Is(entity.RolePatient) {
		return nil, ErrForbiddenRole
	}
	if req.DoctorID == uuid.Nil {
		return nil, ErrDoctorNotFound
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return nil, ErrDateInPast
	}

	clock, err := scheduling.ParseTime(req.Time)
	if err != nil {
		return nil, ErrInvalidTime
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	patient, err := u.patientProfileRepo.FindByUserID(tx, actor.UserID)
	if err != nil {
		u.log.Errorf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(tx, req.DoctorID)
	if err != nil {
		u.log.Errorf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.User.Active() {
		return nil, ErrDoctorNotFound
	}

	conflict, err := u.conflictChecker.HasConflict(tx, req.DoctorID, date, clock, nil)
	if err != nil {
		u.log.Errorf("Failed to check slot conflict: %+v", err)
		return nil, err
	}
	if conflict {
		u.log.Warnf("Booking rejected: doctor %s at %s %s is taken", req.DoctorID, req.Date, clock)
		return nil, ErrSlotAlreadyBooked
	}

	appt := &entity.Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       actor.UserID,
		AppointmentDate: date,
		AppointmentTime: clock,
		Status:          entity.AppointmentStatusPending,
		Notes:           strings.TrimSpace(req.Notes),
		Fee:             doctor.ConsultationFee,
	}

	if err := u.appointmentRepo.Create(tx, appt); err != nil {
		if isDuplicateKeyError(err, constraintAppointmentActive) {
			return nil, ErrSlotAlreadyBooked
		}
		u.log.Errorf("Failed to create appointment: %+v", err)
		return nil, err
	}

	resp := converter.AppointmentToResponse(appt)
	if err := u.auditService.LogCreate(ctx, tx, &actor.UserID, entity.AuditActionAppointmentBook,
		entity.AuditEntityAppointment, appt.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit booking: %+v", err)
		return nil, err
	}

	invalidateGrid(ctx, u.log, u.slotCache, appt.DoctorID, appt.AppointmentDate)
	u.log.Infof("Patient %s booked doctor %s at %s %s", actor.UserID, req.DoctorID, req.Date, clock)

	return resp, nil
}

func (u *patientAppointmentUsecase) GetMyAppointments(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error) {
	if !actor.Is(entity.RolePatient) {
		return nil, ErrForbiddenRole
	}

	appts, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), actor.UserID)
	if err != nil {
		u.log.Errorf("Failed to list appointments for patient %s: %+v", actor.UserID, err)
		return nil, err
	}

	responses := converter.AppointmentsToResponses(appts)
	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

func (u *patientAppointmentUsecase) CancelMyAppointment(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	if !actor.Is(entity.RolePatient) {
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
	if appt == nil || appt.PatientID != actor.UserID {
		return nil, ErrAppointmentNotFound
	}

	affected, err := u.appointmentRepo.UpdateStatusForPatient(tx, actor.UserID, appointmentID,
		entity.ActiveAppointmentStatuses, entity.AppointmentStatusCancelled)
	if err != nil {
		u.log.Errorf("Failed to cancel appointment: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidStatusTransition
	}

	oldStatus := appt.Status.Normalize()
	appt.Status = entity.AppointmentStatusCancelled

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, entity.AuditActionAppointmentCancel,
		entity.AuditEntityAppointment, appointmentID.String(),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": appt.Status}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit cancellation: %+v", err)
		return nil, err
	}

	invalidateGrid(ctx, u.log, u.slotCache, appt.DoctorID, appt.AppointmentDate)
	return converter.AppointmentToResponse(appt), nil
}
