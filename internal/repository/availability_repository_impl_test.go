package repository

import (
	"testing"

	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWindow(doctorID uuid.UUID, day entity.Weekday, start, end string) *entity.AvailabilityWindow {
	return &entity.AvailabilityWindow{
		DoctorID:  doctorID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
	}
}

func TestAvailabilityFindByDoctorIDOrdersByWeekday(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAvailabilityRepository()
	doctorID := uuid.New()

	for _, day := range []entity.Weekday{entity.Sunday, entity.Wednesday, entity.Monday, entity.Friday, entity.Tuesday, entity.Saturday, entity.Thursday} {
		require.NoError(t, repo.Create(db, newWindow(doctorID, day, "09:00:00", "12:00:00")))
	}
	require.NoError(t, repo.Create(db, newWindow(uuid.New(), entity.Monday, "09:00:00", "12:00:00")))

	windows, err := repo.FindByDoctorID(db, doctorID)
	require.NoError(t, err)

	days := make([]entity.Weekday, 0, len(windows))
	for _, w := range windows {
		days = append(days, w.DayOfWeek)
	}
	assert.Equal(t, entity.Weekdays, days)
}

func TestAvailabilityUniquePerDoctorAndDay(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAvailabilityRepository()
	doctorID := uuid.New()

	require.NoError(t, repo.Create(db, newWindow(doctorID, entity.Monday, "09:00:00", "12:00:00")))
	err := repo.Create(db, newWindow(doctorID, entity.Monday, "13:00:00", "15:00:00"))
	assert.Error(t, err)

	existing, err := repo.FindByDoctorAndDay(db, doctorID, entity.Monday)
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, "09:00:00", existing.StartTime)
	assert.Equal(t, "12:00:00", existing.EndTime)
	assert.True(t, existing.Active())
}

func TestAvailabilityFindMissingReturnsNil(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAvailabilityRepository()

	w, err := repo.FindByDoctorAndDay(db, uuid.New(), entity.Monday)
	require.NoError(t, err)
	assert.Nil(t, w)

	w, err = repo.FindByIDAndDoctor(db, 42, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestAvailabilityWritesAreScopedToOwner(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAvailabilityRepository()
	owner := uuid.New()
	other := uuid.New()

	window := newWindow(owner, entity.Tuesday, "09:00:00", "12:00:00")
	require.NoError(t, repo.Create(db, window))

	affected, err := repo.UpdateTimes(db, other, window.ID, "10:00:00", "11:00:00")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = repo.Delete(db, other, window.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = repo.UpdateTimes(db, owner, window.ID, "10:00:00", "11:00:00")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	updated, err := repo.FindByIDAndDoctor(db, window.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, entity.Tuesday, updated.DayOfWeek)
	assert.Equal(t, "10:00:00", updated.StartTime)
	assert.Equal(t, "11:00:00", updated.EndTime)

	affected, err = repo.Delete(db, owner, window.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	gone, err := repo.FindByIDAndDoctor(db, window.ID, owner)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
