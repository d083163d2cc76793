package usecase

import (
	"testing"
	"time"

	"clinic-scheduler/config"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/repository"
	"clinic-scheduler/internal/service"
	"clinic-scheduler/internal/testutil"
	"clinic-scheduler/pkg/jwt"
	"clinic-scheduler/pkg/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires every usecase against an in-memory store, the same way the
// server bootstrap does.
type testEnv struct {
	db    *gorm.DB
	redis *miniredis.Miniredis

	appointments AppointmentUsecase
	profiles     ProfileUsecase
	auth         AuthUsecase
	facilities   FacilityUsecase
	auditLogs    AuditLogUsecase
	jwtService   *jwt.JWTService
}

type envOption func(*envConfig)

type envConfig struct {
	location *time.Location
	policy   entity.BoundaryPolicy
}

func withLocation(loc *time.Location) envOption {
	return func(c *envConfig) { c.location = loc }
}

func withPolicy(p entity.BoundaryPolicy) envOption {
	return func(c *envConfig) { c.policy = p }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := envConfig{location: time.UTC, policy: entity.DefaultBoundaryPolicy}
	for _, opt := range opts {
		opt(&cfg)
	}

	db := testutil.NewTestDB(t)
	log := testutil.NewTestLogger()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	personRepo := repository.NewPersonRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	facilityRepo := repository.NewFacilityRepository()

	auditService := service.NewAuditService(log, auditLogRepo)
	availabilityService := service.NewAvailabilityService(log, personRepo, appointmentRepo, cfg.policy)
	lockService := service.NewScheduleLockService(redisClient, log, time.Second, time.Second)
	t.Cleanup(lockService.Stop)

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})

	return &testEnv{
		db:    db,
		redis: mr,
		appointments: NewAppointmentUsecase(db, log, cfg.location, personRepo, appointmentRepo,
			availabilityService, lockService, auditService),
		profiles: NewProfileUsecase(db, log, validator.NewValidator(), personRepo,
			repository.NewMedicalProfileRepository(), repository.NewInsuranceRecordRepository(),
			repository.NewDoctorProfileRepository(), repository.NewEmergencyContactRepository(),
			facilityRepo, auditService),
		auth:       NewAuthUsecase(db, log, personRepo, jwtService, redisClient, auditService),
		facilities: NewFacilityUsecase(db, log, facilityRepo, auditService),
		auditLogs:  NewAuditLogUsecase(db, log, auditLogRepo),
		jwtService: jwtService,
	}
}

func (e *testEnv) person(t *testing.T, email string, roles ...entity.Role) *entity.Person {
	t.Helper()
	return testutil.NewPerson(t, e.db, email, roles...)
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

// auditMessages returns the recorded audit messages for action, oldest first.
func (e *testEnv) auditMessages(t *testing.T, action string) []string {
	t.Helper()
	var logs []entity.AuditLog
	require.NoError(t, e.db.Where("action = ?", action).Order("id ASC").Find(&logs).Error)

	messages := make([]string, 0, len(logs))
	for _, l := range logs {
		msg, _ := l.Metadata["message"].(string)
		messages = append(messages, msg)
	}
	return messages
}
