package usecase

import (
	"context"
	"testing"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctor := actorOf(testutil.SeedDoctor(t, f.db, "100000"))
	other := actorOf(testutil.SeedDoctor(t, f.db, "100000"))

	for _, d := range []struct {
		who entity.Actor
		day string
	}{{doctor, "Monday"}, {doctor, "Tuesday"}, {other, "Monday"}} {
		_, err := f.availability.AddAvailability(ctx, d.who, &dto.AddAvailabilityRequest{
			Day: d.day, StartTime: "09:00", EndTime: "12:00",
		})
		require.NoError(t, err)
	}
	require.NoError(t, f.availability.DeleteAvailability(ctx, doctor, 1))

	all, err := f.auditLogs.GetAllAuditLogs(ctx, entity.AuditLogFilter{})
	require.NoError(t, err)
	require.Equal(t, 4, all.Total)
	assert.Equal(t, entity.AuditActionAvailabilityDelete, all.Logs[0].Action)

	mine, err := f.auditLogs.GetAllAuditLogs(ctx, entity.AuditLogFilter{UserID: &doctor.UserID})
	require.NoError(t, err)
	assert.Equal(t, 3, mine.Total)

	creates, err := f.auditLogs.GetAllAuditLogs(ctx, entity.AuditLogFilter{Action: entity.AuditActionAvailabilityCreate, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, creates.Total)

	one, err := f.auditLogs.GetAuditLog(ctx, all.Logs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditActionAvailabilityDelete, one.Action)
	require.NotNil(t, one.User)
	assert.Equal(t, doctor.UserID, one.User.ID)

	_, err = f.auditLogs.GetAuditLog(ctx, 9999)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}
