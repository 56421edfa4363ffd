package usecase

import (
	"context"
	"testing"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/service"
	"hospital-scheduling/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) reload(t *testing.T, id uuid.UUID) entity.Appointment {
	t.Helper()
	var appt entity.Appointment
	require.NoError(t, f.db.First(&appt, "id = ?", id).Error)
	return appt
}

func TestRescheduleAppointment_ConflictKeepsOriginal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctorUser := testutil.SeedDoctor(t, f.db, "150000")
	patient := testutil.SeedPatient(t, f.db)

	testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 10), "14:00:00", entity.AppointmentStatusConfirmed)
	moving := testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 11), "09:00:00", entity.AppointmentStatusPending)

	_, err := f.appointments.RescheduleAppointment(ctx, actorOf(doctorUser), moving.ID, &dto.RescheduleAppointmentRequest{
		NewDate: "2024-06-10", NewTime: "2:00 PM",
	})
	require.ErrorIs(t, err, ErrSlotAlreadyBooked)

	got := f.reload(t, moving.ID)
	assert.Equal(t, "2024-06-11", got.AppointmentDate.Format("2006-01-02"))
	assert.Equal(t, "09:00:00", got.AppointmentTime)
	assert.Equal(t, entity.AppointmentStatusPending, got.Status.Normalize())
	assert.Equal(t, int64(0), f.auditCount(t, entity.AuditActionAppointmentReschedule))
}

func TestRescheduleAppointment_FreeSlotConfirms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctorUser := testutil.SeedDoctor(t, f.db, "150000")
	patient := testutil.SeedPatient(t, f.db)

	// a released appointment does not hold the target slot
	testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 12), "10:30:00", entity.AppointmentStatusCancelled)
	appt := testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 11), "09:00:00", entity.AppointmentStatusPending)

	resp, err := f.appointments.RescheduleAppointment(ctx, actorOf(doctorUser), appt.ID, &dto.RescheduleAppointmentRequest{
		NewDate: "2024-06-12", NewTime: "10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "2024-06-12", resp.Date)
	assert.Equal(t, "10:30:00", resp.Time)

	got := f.reload(t, appt.ID)
	assert.Equal(t, entity.AppointmentStatusConfirmed, got.Status.Normalize())
	assert.Equal(t, "10:30:00", got.AppointmentTime)
	assert.Equal(t, int64(1), f.auditCount(t, entity.AuditActionAppointmentReschedule))
}

func TestRescheduleAppointment_SameSlotIsNotAConflict(t *testing.T) {
	f := newFixture(t)
	doctorUser := testutil.SeedDoctor(t, f.db, "150000")
	patient := testutil.SeedPatient(t, f.db)
	appt := testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 11), "09:00:00", entity.AppointmentStatusPending)

	resp, err := f.appointments.RescheduleAppointment(context.Background(), actorOf(doctorUser), appt.ID, &dto.RescheduleAppointmentRequest{
		NewDate: "2024-06-11", NewTime: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestRescheduleAppointment_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctorUser := testutil.SeedDoctor(t, f.db, "150000")
	other := testutil.SeedDoctor(t, f.db, "150000")
	patient := testutil.SeedPatient(t, f.db)
	appt := testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 11), "09:00:00", entity.AppointmentStatusPending)

	tests := []struct {
		name  string
		actor entity.Actor
		id    uuid.UUID
		req   dto.RescheduleAppointmentRequest
		want  error
	}{
		{"patient", actorOf(patient), appt.ID, dto.RescheduleAppointmentRequest{NewDate: "2024-06-12", NewTime: "10:00"}, ErrForbiddenRole},
		{"other doctor", actorOf(other), appt.ID, dto.RescheduleAppointmentRequest{NewDate: "2024-06-12", NewTime: "10:00"}, ErrAppointmentNotFound},
		{"missing", actorOf(doctorUser), uuid.New(), dto.RescheduleAppointmentRequest{NewDate: "2024-06-12", NewTime: "10:00"}, ErrAppointmentNotFound},
		{"bad date", actorOf(doctorUser), appt.ID, dto.RescheduleAppointmentRequest{NewDate: "12/06/2024", NewTime: "10:00"}, ErrInvalidDate},
		{"bad time", actorOf(doctorUser), appt.ID, dto.RescheduleAppointmentRequest{NewDate: "2024-06-12", NewTime: "late"}, ErrInvalidTime},
		{"date as time", actorOf(doctorUser), appt.ID, dto.RescheduleAppointmentRequest{NewDate: "2024-06-12", NewTime: "2024-06-12"}, ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.appointments.RescheduleAppointment(ctx, tt.actor, tt.id, &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	got := f.reload(t, appt.ID)
	assert.Equal(t, "09:00:00", got.AppointmentTime)
}

func TestRescheduleAppointment_CompactTime(t *testing.T) {
	f := newFixture(t)
	doctorUser := testutil.SeedDoctor(t, f.db, "150000")
	patient := testutil.SeedPatient(t, f.db)
	appt := testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 11), "09:00:00", entity.AppointmentStatusPending)

	_, err := f.appointments.RescheduleAppointment(context.Background(), actorOf(doctorUser), appt.ID, &dto.RescheduleAppointmentRequest{
		NewDate: "2024-06-12", NewTime: "1030",
	})
	require.NoError(t, err)
	assert.Equal(t, "10:30:00", f.reload(t, appt.ID).AppointmentTime)
}

func TestRescheduleAppointment_InvalidatesBothGrids(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctorUser := testutil.SeedDoctor(t, f.db, "150000")
	patient := testutil.SeedPatient(t, f.db)
	appt := testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 11), "09:00:00", entity.AppointmentStatusPending)

	for _, date := range []string{"2024-06-11", "2024-06-12"} {
		_, err := f.slotGrid.GetSlotGrid(ctx, doctorUser.ID, date)
		require.NoError(t, err)
	}
	oldKey := service.SlotGridKey(doctorUser.ID, testutil.Date(2024, 6, 11))
	newKey := service.SlotGridKey(doctorUser.ID, testutil.Date(2024, 6, 12))
	require.True(t, f.miniRedis.Exists(oldKey))
	require.True(t, f.miniRedis.Exists(newKey))

	_, err := f.appointments.RescheduleAppointment(ctx, actorOf(doctorUser), appt.ID, &dto.RescheduleAppointmentRequest{
		NewDate: "2024-06-12", NewTime: "11:00",
	})
	require.NoError(t, err)

	assert.False(t, f.miniRedis.Exists(oldKey))
	assert.False(t, f.miniRedis.Exists(newKey))
}

func TestConfirmAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctorUser := testutil.SeedDoctor(t, f.db, "150000")
	other := testutil.SeedDoctor(t, f.db, "150000")
	patient := testutil.SeedPatient(t, f.db)

	pending := testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 11), "09:00:00", entity.AppointmentStatusPending)
	cancelled := testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 11), "10:00:00", entity.AppointmentStatusCancelled)

	_, err := f.appointments.ConfirmAppointment(ctx, actorOf(other), pending.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	resp, err := f.appointments.ConfirmAppointment(ctx, actorOf(doctorUser), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, int64(1), f.auditCount(t, entity.AuditActionAppointmentConfirm))

	_, err = f.appointments.ConfirmAppointment(ctx, actorOf(doctorUser), pending.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = f.appointments.ConfirmAppointment(ctx, actorOf(doctorUser), cancelled.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Equal(t, entity.AppointmentStatusCancelled, f.reload(t, cancelled.ID).Status.Normalize())
}

func TestCancelAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctorUser := testutil.SeedDoctor(t, f.db, "150000")
	patient := testutil.SeedPatient(t, f.db)

	confirmed := testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 11), "09:00:00", entity.AppointmentStatusConfirmed)
	completed := testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 10), "09:00:00", entity.AppointmentStatusCompleted)

	_, err := f.slotGrid.GetSlotGrid(ctx, doctorUser.ID, "2024-06-11")
	require.NoError(t, err)

	resp, err := f.appointments.CancelAppointment(ctx, actorOf(doctorUser), confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.False(t, f.miniRedis.Exists(service.SlotGridKey(doctorUser.ID, testutil.Date(2024, 6, 11))))

	grid, err := f.slotGrid.GetSlotGrid(ctx, doctorUser.ID, "2024-06-11")
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", grid.Slots[0].TimeLabel)
	assert.Equal(t, string(entity.SlotFree), grid.Slots[0].State)

	_, err = f.appointments.CancelAppointment(ctx, actorOf(doctorUser), completed.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestGetDoctorAppointments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctorUser := testutil.SeedDoctor(t, f.db, "150000")
	other := testutil.SeedDoctor(t, f.db, "150000")
	patient := testutil.SeedPatient(t, f.db)

	testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 11), "09:00:00", entity.AppointmentStatusPending)
	testutil.SeedAppointment(t, f.db, doctorUser.ID, patient.ID, testutil.Date(2024, 6, 12), "09:00:00", entity.AppointmentStatusConfirmed)
	testutil.SeedAppointment(t, f.db, other.ID, patient.ID, testutil.Date(2024, 6, 11), "09:00:00", entity.AppointmentStatusPending)

	all, err := f.appointments.GetDoctorAppointments(ctx, actorOf(doctorUser), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
	require.NotNil(t, all.Appointments[0].Patient)
	assert.Equal(t, patient.ID, all.Appointments[0].Patient.ID)

	byDate, err := f.appointments.GetDoctorAppointments(ctx, actorOf(doctorUser), &dto.AppointmentListQuery{Date: "2024-06-12"})
	require.NoError(t, err)
	require.Equal(t, 1, byDate.Total)
	assert.Equal(t, "confirmed", byDate.Appointments[0].Status)

	byStatus, err := f.appointments.GetDoctorAppointments(ctx, actorOf(doctorUser), &dto.AppointmentListQuery{Status: "pending"})
	require.NoError(t, err)
	require.Equal(t, 1, byStatus.Total)
	assert.Equal(t, "2024-06-11", byStatus.Appointments[0].Date)

	_, err = f.appointments.GetDoctorAppointments(ctx, actorOf(doctorUser), &dto.AppointmentListQuery{Status: "lost"})
	assert.ErrorIs(t, err, ErrInvalidStatusFilter)

	_, err = f.appointments.GetDoctorAppointments(ctx, actorOf(patient), nil)
	assert.ErrorIs(t, err, ErrForbiddenRole)
}
