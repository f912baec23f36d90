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

func TestHospitalLifecycle(t *testing.T) {
	h := newHarness(t, defaultAppointmentConfig(), config.ReviewConfig{})
	root := session.Identity{UserID: 1, Role: models.RoleSuperAdmin}
	patient := session.Identity{UserID: 2, Role: models.RolePatient}

	_, err := h.hospitals.CreateHospital(root, HospitalInput{Name: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	hospital, err := h.hospitals.CreateHospital(root, HospitalInput{Name: " City Care ", Email: "INFO@citycare.test"})
	require.NoError(t, err)
	assert.Equal(t, "City Care", hospital.Name)
	assert.Equal(t, "info@citycare.test", hospital.Email)
	assert.True(t, hospital.IsActive())

	require.NoError(t, h.hospitals.SetHospitalStatus(root, hospital.ID, models.HospitalInactive))
	assert.ErrorIs(t, h.hospitals.SetHospitalStatus(root, hospital.ID, "closed"), ErrValidation)

	visible, err := h.hospitals.GetAllHospitals(patient)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := h.hospitals.GetAllHospitals(root)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = h.hospitals.GetHospitalByID(patient, hospital.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateHospitalAdminCanLogin(t *testing.T) {
	h := newHarness(t, defaultAppointmentConfig(), config.ReviewConfig{})
	f := testutil.Seed(t, h.db, "a")
	root := session.Identity{UserID: 1, Role: models.RoleSuperAdmin}

	in := HospitalAdminInput{AccountInput: AccountInput{
		Username:        "manager",
		Email:           "manager@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		FirstName:       "Mia",
		LastName:        "Ward",
	}}
	_, err := h.hospitals.CreateHospitalAdmin(root, 9999, in)
	assert.ErrorIs(t, err, ErrNotFound)

	user, err := h.hospitals.CreateHospitalAdmin(root, f.Hospital.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleHospitalAdmin, user.Role)

	admins, err := h.hospitals.GetHospitalAdmins(adminIdentity(f), f.Hospital.ID)
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	resp, err := h.auth.Login(context.Background(), "manager", "password123")
	require.NoError(t, err)
	assert.Equal(t, f.Hospital.ID, resp.User.HospitalID)
}

func TestDepartmentsAreHospitalScoped(t *testing.T) {
	h := newHarness(t, defaultAppointmentConfig(), config.ReviewConfig{})
	a := testutil.Seed(t, h.db, "a")
	b := testutil.Seed(t, h.db, "b")

	_, err := h.departments.CreateDepartment(adminIdentity(b), a.Hospital.ID, DepartmentInput{Name: "Oncology"})
	assert.ErrorIs(t, err, ErrForbidden)

	dept, err := h.departments.CreateDepartment(adminIdentity(a), a.Hospital.ID, DepartmentInput{Name: " Oncology "})
	require.NoError(t, err)
	assert.Equal(t, "Oncology", dept.Name)

	_, err = h.departments.UpdateDepartment(adminIdentity(a), a.Hospital.ID, b.Department.ID, DepartmentInput{Name: "Renamed"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, h.departments.DeactivateDepartment(adminIdentity(a), a.Hospital.ID, dept.ID))

	public, err := h.departments.GetDepartmentsByHospitalID(patientIdentity(a), a.Hospital.ID)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	staff, err := h.departments.GetDepartmentsByHospitalID(adminIdentity(a), a.Hospital.ID)
	require.NoError(t, err)
	assert.Len(t, staff, 2)

	booking := bookingFor(a, "2030-03-07", "10:00")
	booking.DepartmentID = dept.ID
	_, err = h.appointments.CreateAppointment(patientIdentity(a), booking)
	assert.ErrorIs(t, err, ErrValidation)
}
