package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "SESSION_TTL", "APPOINTMENT_CONFLICT_POLICY", "SLOT_MINUTES", "ALLOWED_ORIGINS", "REVIEW_REQUIRES_COMPLETED"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, ConflictPolicyNone, cfg.Appointments.ConflictPolicy)
	assert.Equal(t, 30, cfg.Appointments.SlotMinutes)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Reviews.RequireCompletedAppointment)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("APPOINTMENT_CONFLICT_POLICY", "REJECT")
	t.Setenv("SLOT_MINUTES", "-5")
	t.Setenv("ALLOWED_ORIGINS", " https://a.test , ,https://b.test")
	t.Setenv("REVIEW_REQUIRES_COMPLETED", "true")
	t.Setenv("GIN_MODE", "release")

	cfg := LoadConfig()
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN(), "port=5432")
	assert.Equal(t, 90*time.Minute, cfg.Session.TTL)
	assert.Equal(t, ConflictPolicyReject, cfg.Appointments.ConflictPolicy)
	assert.Equal(t, 30, cfg.Appointments.SlotMinutes)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Reviews.RequireCompletedAppointment)
	assert.True(t, cfg.IsRelease())
}

func TestParseConflictPolicyFallsBack(t *testing.T) {
	assert.Equal(t, ConflictPolicyNone, parseConflictPolicy("sometimes"))
	assert.Equal(t, ConflictPolicyNone, parseConflictPolicy(""))
}

func TestMySQLDSN(t *testing.T) {
	db := DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", User: "u", Password: "p", Database: "hms"}
	assert.Equal(t, "u:p@tcp(db:3306)/hms?charset=utf8mb4&parseTime=True&loc=Local", db.DSN())
}
