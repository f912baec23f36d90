package service

import (
	"testing"
	"time"

	"hospital-management/internal/config"
	"hospital-management/internal/repository"
	"hospital-management/internal/session"
	"hospital-management/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixedNow is a Wednesday; appointments in tests are dated relative to it
var fixedNow = time.Date(2030, time.March, 6, 8, 0, 0, 0, time.UTC)

type harness struct {
	db       *gorm.DB
	mr       *miniredis.Miniredis
	sessions *session.Store

	auth          *AuthService
	hospitals     *HospitalService
	departments   *DepartmentService
	doctors       *DoctorService
	appointments  *AppointmentService
	dashboards    *DashboardService
	reviews       *ReviewService
	notifications *NotificationService
}

func defaultAppointmentConfig() config.AppointmentConfig {
	return config.AppointmentConfig{
		ConflictPolicy: config.ConflictPolicyNone,
		SlotDayStart:   "09:00",
		SlotDayEnd:     "17:00",
		SlotMinutes:    30,
	}
}

func newHarness(t *testing.T, appointmentCfg config.AppointmentConfig, reviewCfg config.ReviewConfig) *harness {
	t.Helper()
	db := testutil.NewTestDB(t)
	sessions, mr := testutil.NewTestStore(t)
	log := zap.NewNop()

	userRepo := repository.NewUserRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	hospitalRepo := repository.NewHospitalRepo(db)
	departmentRepo := repository.NewDepartmentRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	h := &harness{
		db:            db,
		mr:            mr,
		sessions:      sessions,
		auth:          NewAuthService(userRepo, profileRepo, auditRepo, sessions, log),
		hospitals:     NewHospitalService(hospitalRepo, userRepo, profileRepo, auditRepo, log),
		departments:   NewDepartmentService(departmentRepo, hospitalRepo, auditRepo, log),
		doctors:       NewDoctorService(profileRepo, userRepo, departmentRepo, appointmentRepo, auditRepo, appointmentCfg, log),
		appointments:  NewAppointmentService(appointmentRepo, hospitalRepo, departmentRepo, profileRepo, auditRepo, notificationRepo, appointmentCfg, log),
		dashboards:    NewDashboardService(hospitalRepo, departmentRepo, userRepo, profileRepo, appointmentRepo, reviewRepo, notificationRepo),
		reviews:       NewReviewService(reviewRepo, profileRepo, appointmentRepo, auditRepo, notificationRepo, reviewCfg, log),
		notifications: NewNotificationService(notificationRepo),
	}
	h.appointments.now = func() time.Time { return fixedNow }
	h.dashboards.now = func() time.Time { return fixedNow }
	return h
}

func patientIdentity(f testutil.Fixture) session.Identity {
	return session.Identity{UserID: f.PatientUser.ID, ProfileID: f.Patient.ID, Role: f.PatientUser.Role}
}

func doctorIdentity(f testutil.Fixture) session.Identity {
	return session.Identity{
		UserID:     f.DoctorUser.ID,
		ProfileID:  f.Doctor.ID,
		HospitalID: f.Hospital.ID,
		Role:       f.DoctorUser.Role,
	}
}

func adminIdentity(f testutil.Fixture) session.Identity {
	return session.Identity{
		UserID:     f.AdminUser.ID,
		ProfileID:  f.Admin.ID,
		HospitalID: f.Hospital.ID,
		Role:       f.AdminUser.Role,
	}
}
