package service

import (
	"testing"

	"hospital-management/internal/config"
	"hospital-management/internal/models"
	"hospital-management/internal/session"
	"hospital-management/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	slots, err := generateSlots("09:00", "10:45", 30, []string{"09:30"})
	require.NoError(t, err)
	assert.Equal(t, []TimeSlot{
		{Time: "09:00", EndTime: "09:30", Available: true},
		{Time: "09:30", EndTime: "10:00", Available: false},
		{Time: "10:00", EndTime: "10:30", Available: true},
	}, slots)

	_, err = generateSlots("9am", "17:00", 30, nil)
	assert.Error(t, err)
	_, err = generateSlots("09:00", "17:00", 0, nil)
	assert.Error(t, err)

	slots, err = generateSlots("17:00", "09:00", 30, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsSkipsCancelled(t *testing.T) {
	h := newHarness(t, defaultAppointmentConfig(), config.ReviewConfig{})
	f := testutil.Seed(t, h.db, "a")
	f.Appointment(t, h.db, "2030-03-07", "09:00", models.StatusScheduled)
	f.Appointment(t, h.db, "2030-03-07", "09:30", models.StatusCancelled)

	slots, err := h.doctors.AvailableSlots(f.Doctor.ID, "2030-03-07")
	require.NoError(t, err)
	require.Len(t, slots, 16)
	assert.False(t, slots[0].Available)
	assert.True(t, slots[1].Available)
	assert.Equal(t, "16:30", slots[15].Time)

	_, err = h.doctors.AvailableSlots(f.Doctor.ID, "07/03/2030")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = h.doctors.AvailableSlots(9999, "2030-03-07")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDoctor(t *testing.T) {
	h := newHarness(t, defaultAppointmentConfig(), config.ReviewConfig{})
	a := testutil.Seed(t, h.db, "a")
	b := testutil.Seed(t, h.db, "b")

	in := DoctorInput{
		AccountInput: AccountInput{
			Username:        "drwho",
			Email:           "drwho@example.com",
			Password:        "password123",
			ConfirmPassword: "password123",
			FirstName:       "John",
			LastName:        "Smith",
		},
		DepartmentID: a.Department.ID,
		Specialty:    "Cardiology",
	}

	_, err := h.doctors.CreateDoctor(adminIdentity(b), a.Hospital.ID, in)
	assert.ErrorIs(t, err, ErrForbidden)

	wrongDept := in
	wrongDept.DepartmentID = b.Department.ID
	_, err = h.doctors.CreateDoctor(adminIdentity(a), a.Hospital.ID, wrongDept)
	assert.ErrorIs(t, err, ErrValidation)

	doctor, err := h.doctors.CreateDoctor(adminIdentity(a), a.Hospital.ID, in)
	require.NoError(t, err)
	assert.Equal(t, a.Hospital.ID, doctor.HospitalID)
	assert.Equal(t, models.RoleDoctor, doctor.User.Role)

	doctors, err := h.doctors.GetDoctorsByHospitalID(session.Identity{Role: models.RolePatient}, a.Hospital.ID, 0)
	require.NoError(t, err)
	assert.Len(t, doctors, 2)
}
