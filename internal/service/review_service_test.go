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

func TestReviewModeration(t *testing.T) {
	h := newHarness(t, defaultAppointmentConfig(), config.ReviewConfig{})
	a := testutil.Seed(t, h.db, "a")
	b := testutil.Seed(t, h.db, "b")

	_, err := h.reviews.CreateReview(patientIdentity(a), ReviewInput{DoctorID: a.Doctor.ID, Rating: 6})
	assert.ErrorIs(t, err, ErrValidation)

	review, err := h.reviews.CreateReview(patientIdentity(a), ReviewInput{DoctorID: a.Doctor.ID, Rating: 5, Comment: " great "})
	require.NoError(t, err)
	assert.False(t, review.IsApproved)
	assert.Equal(t, "great", review.Comment)

	public, err := h.reviews.GetDoctorReviews(a.Doctor.ID)
	require.NoError(t, err)
	assert.Empty(t, public)

	pending, err := h.reviews.GetPendingReviews(adminIdentity(b))
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.ErrorIs(t, h.reviews.ApproveReview(adminIdentity(b), review.ID), ErrForbidden)

	pending, err = h.reviews.GetPendingReviews(adminIdentity(a))
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, h.reviews.ApproveReview(adminIdentity(a), review.ID))
	assert.ErrorIs(t, h.reviews.RejectReview(adminIdentity(a), review.ID), ErrInvalidTransition)

	public, err = h.reviews.GetDoctorReviews(a.Doctor.ID)
	require.NoError(t, err)
	require.Len(t, public, 1)

	unread, err := h.notifications.UnreadCount(doctorIdentity(a))
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	other, err := h.reviews.CreateReview(patientIdentity(b), ReviewInput{DoctorID: b.Doctor.ID, Rating: 1})
	require.NoError(t, err)
	require.NoError(t, h.reviews.RejectReview(session.Identity{Role: models.RoleSuperAdmin}, other.ID))
	assert.ErrorIs(t, h.reviews.ApproveReview(adminIdentity(b), other.ID), ErrNotFound)
}

func TestReviewRequiresCompletedAppointment(t *testing.T) {
	h := newHarness(t, defaultAppointmentConfig(), config.ReviewConfig{RequireCompletedAppointment: true})
	f := testutil.Seed(t, h.db, "a")

	_, err := h.reviews.CreateReview(patientIdentity(f), ReviewInput{DoctorID: f.Doctor.ID, Rating: 4})
	assert.ErrorIs(t, err, ErrValidation)

	f.Appointment(t, h.db, "2030-03-01", "09:00", models.StatusCompleted)
	_, err = h.reviews.CreateReview(patientIdentity(f), ReviewInput{DoctorID: f.Doctor.ID, Rating: 4})
	assert.NoError(t, err)
}
