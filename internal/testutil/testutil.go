// Package testutil wires throwaway SQLite and Redis backends for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"hospital-management/internal/database"
	"hospital-management/internal/models"
	"hospital-management/internal/session"
	"hospital-management/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain text password of every seeded account
const Password = "password123"

// NewTestDB opens a private in-memory database with the schema migrated
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	utils.BcryptCost = 4
	return db
}

// NewTestStore returns a session store backed by miniredis
func NewTestStore(t *testing.T) (*session.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	utils.InitJWT("test-secret", time.Hour)
	return session.NewStore(client, time.Hour), mr
}

// Fixture is a small hospital with one department, doctor, admin and patient
type Fixture struct {
	Hospital    models.Hospital
	Department  models.Department
	Doctor      models.DoctorProfile
	DoctorUser  models.User
	Admin       models.HospitalAdmin
	AdminUser   models.User
	Patient     models.PatientProfile
	PatientUser models.User
}

// Seed creates a Fixture. prefix keeps usernames unique when called more than once.
func Seed(t *testing.T, db *gorm.DB, prefix string) Fixture {
	t.Helper()
	var f Fixture

	f.Hospital = models.Hospital{Name: prefix + " General", Status: models.HospitalActive}
	mustCreate(t, db, &f.Hospital)

	f.Department = models.Department{HospitalID: f.Hospital.ID, Name: "Cardiology", IsActive: true}
	mustCreate(t, db, &f.Department)

	f.DoctorUser = NewUser(t, prefix+"doc", models.RoleDoctor)
	mustCreate(t, db, &f.DoctorUser)
	f.Doctor = models.DoctorProfile{
		UserID:       f.DoctorUser.ID,
		HospitalID:   f.Hospital.ID,
		DepartmentID: f.Department.ID,
		Specialty:    "Cardiology",
	}
	mustCreate(t, db, &f.Doctor)

	f.AdminUser = NewUser(t, prefix+"admin", models.RoleHospitalAdmin)
	mustCreate(t, db, &f.AdminUser)
	f.Admin = models.HospitalAdmin{UserID: f.AdminUser.ID, HospitalID: f.Hospital.ID}
	mustCreate(t, db, &f.Admin)

	f.PatientUser = NewUser(t, prefix+"pat", models.RolePatient)
	mustCreate(t, db, &f.PatientUser)
	f.Patient = models.PatientProfile{UserID: f.PatientUser.ID}
	mustCreate(t, db, &f.Patient)

	return f
}

// NewUser builds an unsaved user whose password is Password
func NewUser(t *testing.T, username string, role models.Role) models.User {
	t.Helper()
	hash, err := utils.HashPassword(Password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		FirstName:    username,
		LastName:     "Test",
		Role:         role,
	}
}

// Appointment inserts an appointment for the fixture's doctor and patient
func (f Fixture) Appointment(t *testing.T, db *gorm.DB, date, clock string, status models.AppointmentStatus) models.Appointment {
	t.Helper()
	a := models.Appointment{
		PatientID:       f.Patient.ID,
		DoctorID:        f.Doctor.ID,
		HospitalID:      f.Hospital.ID,
		DepartmentID:    f.Department.ID,
		AppointmentDate: date,
		AppointmentTime: clock,
		Status:          status,
	}
	mustCreate(t, db, &a)
	return a
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}
