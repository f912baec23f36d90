package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusBadge(t *testing.T) {
	cases := map[AppointmentStatus]string{
		StatusScheduled: "primary",
		StatusCompleted: "success",
		StatusCancelled: "danger",
		StatusMissed:    "warning",
		"rescheduled":   "warning",
		"":              "warning",
	}
	for status, want := range cases {
		assert.Equal(t, want, status.Badge(), "status %q", status)
	}
}

func TestAppointmentStatusTransitions(t *testing.T) {
	assert.True(t, StatusScheduled.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusScheduled.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusScheduled.CanTransitionTo(StatusMissed))
	assert.False(t, StatusScheduled.CanTransitionTo(StatusScheduled))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusScheduled))
	assert.False(t, StatusMissed.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusScheduled.CanTransitionTo("archived"))
}

func TestRoleDashboardPath(t *testing.T) {
	assert.Equal(t, "/super-admin/dashboard", RoleSuperAdmin.DashboardPath())
	assert.Equal(t, "/hospital-admin/dashboard", RoleHospitalAdmin.DashboardPath())
	assert.Equal(t, "/doctor/dashboard", RoleDoctor.DashboardPath())
	assert.Equal(t, "/patient/dashboard", RolePatient.DashboardPath())
	assert.False(t, Role("nurse").IsValid())
	assert.True(t, RoleDoctor.IsValid())
}
