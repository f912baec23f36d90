package repository

import (
	"testing"

	"hospital-management/internal/models"
	"hospital-management/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentFilterScopesHospital(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAppointmentRepo(db)
	a := testutil.Seed(t, db, "a")
	b := testutil.Seed(t, db, "b")

	a.Appointment(t, db, "2030-01-01", "09:00", models.StatusScheduled)
	a.Appointment(t, db, "2030-01-02", "10:00", models.StatusCompleted)
	b.Appointment(t, db, "2030-01-01", "09:00", models.StatusScheduled)

	n, err := repo.CountAppointments(AppointmentFilter{HospitalID: a.Hospital.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	rows, err := repo.CountByStatus(AppointmentFilter{HospitalID: a.Hospital.ID})
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{{Label: "completed", Count: 1}, {Label: "scheduled", Count: 1}}, rows)

	byDept, err := repo.CountByDepartment(AppointmentFilter{HospitalID: b.Hospital.ID})
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{{Label: "Cardiology", Count: 1}}, byDept)

	list, err := repo.GetAppointments(AppointmentFilter{HospitalID: a.Hospital.ID, Newest: true})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2030-01-02", list[0].AppointmentDate)
	assert.Equal(t, "success", list[0].Badge)
	require.NotNil(t, list[0].Doctor)
	require.NotNil(t, list[0].Doctor.User)
	for _, appt := range list {
		assert.Equal(t, a.Hospital.ID, appt.HospitalID)
	}
}

func TestUpdateStatusOnlyFromExpected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAppointmentRepo(db)
	f := testutil.Seed(t, db, "x")
	appt := f.Appointment(t, db, "2030-01-01", "09:00", models.StatusScheduled)

	ok, err := repo.UpdateStatus(appt.ID, models.StatusScheduled, models.StatusCompleted, "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatus(appt.ID, models.StatusScheduled, models.StatusCancelled, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConflictsAndSweep(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAppointmentRepo(db)
	f := testutil.Seed(t, db, "y")
	f.Appointment(t, db, "2030-01-01", "09:00", models.StatusCancelled)

	n, err := repo.CountConflicts(f.Doctor.ID, "2030-01-01", "09:00")
	require.NoError(t, err)
	assert.Zero(t, n)

	f.Appointment(t, db, "2030-01-01", "09:00", models.StatusScheduled)
	n, err = repo.CountConflicts(f.Doctor.ID, "2030-01-01", "09:00")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	times, err := repo.TakenTimes(f.Doctor.ID, "2030-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, times)

	f.Appointment(t, db, "2020-05-05", "11:00", models.StatusScheduled)
	swept, err := repo.MarkMissedBefore("2025-01-01")
	require.NoError(t, err)
	assert.EqualValues(t, 1, swept)
}
