package service

import (
	"context"
	"testing"

	"hospital-management/internal/config"
	"hospital-management/internal/models"
	"hospital-management/internal/session"
	"hospital-management/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHospitalAdminDashboardIsScoped(t *testing.T) {
	h := newHarness(t, defaultAppointmentConfig(), config.ReviewConfig{})
	ctx := context.Background()
	a := testutil.Seed(t, h.db, "a")
	b := testutil.Seed(t, h.db, "b")

	a.Appointment(t, h.db, "2030-03-06", "09:00", models.StatusScheduled)
	a.Appointment(t, h.db, "2030-03-01", "09:00", models.StatusCompleted)
	b.Appointment(t, h.db, "2030-03-06", "09:00", models.StatusScheduled)
	b.Appointment(t, h.db, "2030-03-06", "10:00", models.StatusScheduled)
	b.Appointment(t, h.db, "2030-03-02", "10:00", models.StatusCancelled)
	require.NoError(t, h.db.Create(&models.Review{PatientID: b.Patient.ID, DoctorID: b.Doctor.ID, Rating: 4}).Error)

	d, err := h.dashboards.HospitalAdmin(ctx, a.Hospital.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, d.TotalDoctors)
	assert.EqualValues(t, 1, d.TotalDepartments)
	assert.EqualValues(t, 2, d.TotalAppointments)
	assert.EqualValues(t, 1, d.TodayAppointmentCount)
	assert.Zero(t, d.PendingReviews)
	assert.Equal(t, Chart{Labels: []string{"completed", "scheduled"}, Values: []int64{1, 1}}, d.AppointmentsByStatus)
	assert.Equal(t, Chart{Labels: []string{"Cardiology"}, Values: []int64{2}}, d.AppointmentsByDept)
	require.Len(t, d.TodayAppointments, 1)
	assert.Len(t, d.RecentAppointments, 2)
	for _, appt := range append(d.TodayAppointments, d.RecentAppointments...) {
		assert.Equal(t, a.Hospital.ID, appt.HospitalID)
	}

	d, err = h.dashboards.HospitalAdmin(ctx, b.Hospital.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, d.TotalAppointments)
	assert.EqualValues(t, 2, d.TodayAppointmentCount)
	assert.EqualValues(t, 1, d.PendingReviews)

	_, err = h.dashboards.HospitalAdmin(ctx, 0)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSuperAdminDashboard(t *testing.T) {
	h := newHarness(t, defaultAppointmentConfig(), config.ReviewConfig{})
	a := testutil.Seed(t, h.db, "a")
	b := testutil.Seed(t, h.db, "b")
	a.Appointment(t, h.db, "2030-03-06", "09:00", models.StatusScheduled)
	b.Appointment(t, h.db, "2030-03-06", "09:00", models.StatusMissed)
	require.NoError(t, h.hospitals.SetHospitalStatus(session.Identity{Role: models.RoleSuperAdmin}, b.Hospital.ID, models.HospitalInactive))

	d, err := h.dashboards.SuperAdmin(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, d.TotalHospitals)
	assert.EqualValues(t, 1, d.ActiveHospitals)
	assert.EqualValues(t, 2, d.TotalAppointments)
	assert.Equal(t, map[string]int64{
		"patient":        2,
		"doctor":         2,
		"hospital_admin": 2,
		"super_admin":    0,
	}, d.UsersByRole)
	assert.Equal(t, []string{"a General", "b General"}, d.AppointmentsByHospital.Labels)
	assert.Len(t, d.RecentAppointments, 2)
}

func TestDoctorAndPatientDashboards(t *testing.T) {
	h := newHarness(t, defaultAppointmentConfig(), config.ReviewConfig{})
	ctx := context.Background()
	f := testutil.Seed(t, h.db, "a")
	f.Appointment(t, h.db, "2030-03-06", "09:00", models.StatusScheduled)
	f.Appointment(t, h.db, "2030-03-08", "09:00", models.StatusScheduled)
	f.Appointment(t, h.db, "2030-03-01", "09:00", models.StatusCompleted)
	require.NoError(t, h.db.Create(&models.Review{PatientID: f.Patient.ID, DoctorID: f.Doctor.ID, Rating: 4, IsApproved: true}).Error)
	require.NoError(t, h.db.Create(&models.Review{PatientID: f.Patient.ID, DoctorID: f.Doctor.ID, Rating: 5, IsApproved: true}).Error)
	require.NoError(t, h.db.Create(&models.Review{PatientID: f.Patient.ID, DoctorID: f.Doctor.ID, Rating: 1}).Error)

	raw, err := h.dashboards.ForIdentity(ctx, doctorIdentity(f))
	require.NoError(t, err)
	doc, ok := raw.(*DoctorDashboard)
	require.True(t, ok)
	assert.Len(t, doc.TodayAppointments, 1)
	assert.Len(t, doc.UpcomingAppointments, 2)
	assert.InDelta(t, 4.5, doc.AverageRating, 0.001)
	assert.EqualValues(t, 2, doc.ReviewCount)

	raw, err = h.dashboards.ForIdentity(ctx, patientIdentity(f))
	require.NoError(t, err)
	pat, ok := raw.(*PatientDashboard)
	require.True(t, ok)
	assert.Len(t, pat.UpcomingAppointments, 2)
	require.Len(t, pat.RecentAppointments, 3)
	assert.Equal(t, "2030-03-08", pat.RecentAppointments[0].AppointmentDate)

	_, err = h.dashboards.ForIdentity(ctx, session.Identity{Role: "nurse"})
	assert.ErrorIs(t, err, ErrUnrecognizedRole)
}
