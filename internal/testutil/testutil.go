// Package testutil builds throwaway stores for tests: an in-memory SQLite
// database migrated with the application entities, and a miniredis server.
package testutil

import (
	"fmt"
	"io"
	"testing"
	"time"

	"hospital-scheduling/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultPassword is the plain password of every seeded user
const DefaultPassword = "secret123"

// NewDB opens a private in-memory database and migrates every entity.
// A single connection is used, so code under test must not use the root
// handle while a transaction is open.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.DoctorProfile{},
		&entity.PatientProfile{},
		&entity.AvailabilityWindow{},
		&entity.Appointment{},
		&entity.AuditLog{},
	))

	roles := []entity.Role{
		{ID: entity.RoleAdmin, RoleName: entity.RoleNameAdmin},
		{ID: entity.RoleDoctor, RoleName: entity.RoleNameDoctor},
		{ID: entity.RolePatient, RoleName: entity.RoleNamePatient},
		{ID: entity.RoleReceptionist, RoleName: entity.RoleNameReceptionist},
	}
	require.NoError(t, db.Create(&roles).Error)

	return db
}

// NewRedis starts a miniredis server that is closed with the test.
func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

// NewLogger returns a logger that discards output
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func SeedUser(t *testing.T, db *gorm.DB, role entity.RoleKind, email string) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		RoleID:   role,
		Email:    email,
		Password: string(hash),
		FullName: "Test " + role.String(),
	}
	require.NoError(t, db.Omit("Role", "DoctorProfile", "PatientProfile").Create(user).Error)
	return user
}

// SeedDoctor creates a doctor user with a profile charging fee per consultation.
func SeedDoctor(t *testing.T, db *gorm.DB, fee string) *entity.User {
	t.Helper()

	user := SeedUser(t, db, entity.RoleDoctor, uuid.NewString()+"@doctor.test")
	profile := &entity.DoctorProfile{
		UserID:          user.ID,
		LicenseNumber:   "LIC-" + user.ID.String()[:8],
		Specialization:  "General Practice",
		ConsultationFee: decimal.RequireFromString(fee),
	}
	require.NoError(t, db.Omit("User", "Availabilities").Create(profile).Error)
	return user
}

func SeedPatient(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()

	user := SeedUser(t, db, entity.RolePatient, uuid.NewString()+"@patient.test")
	profile := &entity.PatientProfile{
		UserID:              user.ID,
		MedicalRecordNumber: "MRN-" + user.ID.String()[:8],
		DateOfBirth:         time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:              entity.GenderFemale,
	}
	require.NoError(t, db.Omit("User", "Appointments").Create(profile).Error)
	return user
}

// SeedAppointment inserts an appointment as-is, bypassing booking rules.
func SeedAppointment(t *testing.T, db *gorm.DB, doctorID, patientID uuid.UUID, date time.Time, clock string, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()

	appt := &entity.Appointment{
		DoctorID:        doctorID,
		PatientID:       patientID,
		AppointmentDate: date,
		AppointmentTime: clock,
		Status:          status,
		Fee:             decimal.Zero,
	}
	require.NoError(t, db.Omit("Doctor", "Patient").Create(appt).Error)
	return appt
}

// Date returns midnight UTC of the given calendar day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
