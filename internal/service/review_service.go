package service

import (
	"fmt"
	"strings"

	"hospital-management/internal/config"
	"hospital-management/internal/models"
	"hospital-management/internal/repository"
	"hospital-management/internal/session"

	"go.uber.org/zap"
)

type ReviewService struct {
	reviewRepo      *repository.ReviewRepository
	profileRepo     *repository.ProfileRepository
	appointmentRepo *repository.AppointmentRepository
	cfg             config.ReviewConfig
	rec             recorder
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	profileRepo *repository.ProfileRepository,
	appointmentRepo *repository.AppointmentRepository,
	auditRepo *repository.AuditRepository,
	notificationRepo *repository.NotificationRepository,
	cfg config.ReviewConfig,
	log *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:      reviewRepo,
		profileRepo:     profileRepo,
		appointmentRepo: appointmentRepo,
		cfg:             cfg,
		rec:             newRecorder(auditRepo, notificationRepo, log),
	}
}

// ReviewInput is a patient's rating of a doctor
type ReviewInput struct {
	DoctorID uint   `json:"doctor_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment" validate:"omitempty,max=2000"`
}

// CreateReview stores an unapproved review from the session patient
func (s *ReviewService) CreateReview(identity session.Identity, in ReviewInput) (*models.Review, error) {
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validate(in); err != nil {
		return nil, err
	}

	doctor, err := s.profileRepo.GetDoctorByID(in.DoctorID)
	if err != nil {
		return nil, err
	}

	if s.cfg.RequireCompletedAppointment {
		seen, err := s.appointmentRepo.HasCompletedAppointment(identity.ProfileID, doctor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check appointment history: %w", err)
		}
		if !seen {
			return nil, invalid("You can only review doctors after a completed appointment")
		}
	}

	review := &models.Review{
		PatientID: identity.ProfileID,
		DoctorID:  doctor.ID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := s.reviewRepo.CreateReview(review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// loadModerated fetches a review the identity may moderate
func (s *ReviewService) loadModerated(identity session.Identity, id uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetReviewByID(id)
	if err != nil {
		return nil, err
	}
	if review.Doctor == nil {
		return nil, &repository.NotFoundError{Entity: "doctor"}
	}
	if identity.Role != models.RoleSuperAdmin && review.Doctor.HospitalID != identity.HospitalID {
		return nil, fmt.Errorf("%w: review belongs to another hospital", ErrForbidden)
	}
	return review, nil
}

// ApproveReview publishes a review and tells the doctor
func (s *ReviewService) ApproveReview(identity session.Identity, id uint) error {
	review, err := s.loadModerated(identity, id)
	if err != nil {
		return err
	}
	if review.IsApproved {
		return nil
	}
	if err := s.reviewRepo.ApproveReview(id); err != nil {
		return fmt.Errorf("failed to approve review: %w", err)
	}

	s.rec.notify(review.Doctor.UserID, "New review",
		fmt.Sprintf("A %d star review was published on your profile.", review.Rating),
		fmt.Sprintf("/doctors/%d/reviews", review.DoctorID))
	s.rec.audit(identity.UserID, "review_approve", fmt.Sprintf("Review %d approved", id))
	return nil
}

// RejectReview deletes a pending review
func (s *ReviewService) RejectReview(identity session.Identity, id uint) error {
	review, err := s.loadModerated(identity, id)
	if err != nil {
		return err
	}
	if review.IsApproved {
		return fmt.Errorf("%w: review is already approved", ErrInvalidTransition)
	}
	if err := s.reviewRepo.DeleteReview(id); err != nil {
		return fmt.Errorf("failed to reject review: %w", err)
	}
	s.rec.audit(identity.UserID, "review_reject", fmt.Sprintf("Review %d rejected", id))
	return nil
}

// GetPendingReviews lists reviews awaiting moderation for the admin's hospital
func (s *ReviewService) GetPendingReviews(identity session.Identity) ([]models.Review, error) {
	hospitalID := identity.HospitalID
	if identity.Role == models.RoleSuperAdmin {
		hospitalID = 0
	}
	return s.reviewRepo.GetPendingReviews(hospitalID)
}

// GetDoctorReviews lists the approved reviews of a doctor
func (s *ReviewService) GetDoctorReviews(doctorID uint) ([]models.Review, error) {
	if _, err := s.profileRepo.GetDoctorByID(doctorID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetApprovedReviewsByDoctorID(doctorID)
}
