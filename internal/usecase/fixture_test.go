package usecase

import (
	"testing"
	"time"

	"hospital-scheduling/config"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/scheduling"
	"hospital-scheduling/internal/repository"
	"hospital-scheduling/internal/service"
	"hospital-scheduling/internal/testutil"
	"hospital-scheduling/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	redis     *redis.Client
	miniRedis *miniredis.Miniredis
	log       *logrus.Logger
	jwt       *jwt.JWTService
	slotCache *service.SlotCacheService

	availability AvailabilityUsecase
	appointments AppointmentUsecase
	patients     *patientAppointmentUsecase
	slotGrid     SlotGridUsecase
	auth         AuthUsecase
	auditLogs    AuditLogUsecase
	doctors      DoctorProfileUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	redisClient, mr := testutil.NewRedis(t)
	log := testutil.NewLogger()

	userRepo := repository.NewUserRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	availabilityRepo := repository.NewAvailabilityRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)
	conflictChecker := service.NewConflictChecker(appointmentRepo)
	profileResolver := service.NewProfileResolver(doctorProfileRepo, patientProfileRepo)
	slotCache := service.NewSlotCacheService(redisClient, log, 10*time.Minute)
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})

	patients := NewPatientAppointmentUsecase(db, log, appointmentRepo, doctorProfileRepo, patientProfileRepo,
		conflictChecker, auditService, slotCache).(*patientAppointmentUsecase)
	patients.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

	return &fixture{
		db:        db,
		redis:     redisClient,
		miniRedis: mr,
		log:       log,
		jwt:       jwtService,
		slotCache: slotCache,

		availability: NewAvailabilityUsecase(db, log, availabilityRepo, auditService),
		appointments: NewAppointmentUsecase(db, log, appointmentRepo, conflictChecker, auditService, slotCache),
		patients:     patients,
		slotGrid:     NewSlotGridUsecase(db, log, appointmentRepo, availabilityRepo, doctorProfileRepo, slotCache, scheduling.DefaultGridOptions()),
		auth:         NewAuthUsecase(db, log, userRepo, profileResolver, auditService, jwtService, redisClient),
		auditLogs:    NewAuditLogUsecase(db, log, auditLogRepo),
		doctors:      NewDoctorProfileUsecase(db, log, doctorProfileRepo, availabilityRepo),
	}
}

func actorOf(u *entity.User) entity.Actor {
	return entity.Actor{UserID: u.ID, Role: u.RoleID}
}

func (f *fixture) auditCount(t *testing.T, action string) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&entity.AuditLog{}).Where("action = ?", action).Count(&n).Error; err != nil {
		t.Fatalf("count audit logs: %v", err)
	}
	return n
}
