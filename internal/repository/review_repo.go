package repository

import (
	"hospital-management/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateReview creates a new review
func (r *ReviewRepository) CreateReview(review *models.Review) error {
	return r.db.Create(review).Error
}

// GetReviewByID retrieves a review with its doctor
func (r *ReviewRepository) GetReviewByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.Preload("Doctor").First(&review, id).Error; err != nil {
		return nil, notFound(err, "review")
	}
	return &review, nil
}

// ApproveReview marks a review approved
func (r *ReviewRepository) ApproveReview(id uint) error {
	return r.db.Model(&models.Review{}).Where("id = ?", id).Update("is_approved", true).Error
}

// DeleteReview removes a review
func (r *ReviewRepository) DeleteReview(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}

// GetPendingReviews lists unapproved reviews of doctors in hospitalID (0 = all hospitals)
func (r *ReviewRepository) GetPendingReviews(hospitalID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.pending(hospitalID).
		Preload("Patient.User").
		Preload("Doctor.User").
		Order("reviews.created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// CountPendingReviews counts unapproved reviews of doctors in hospitalID
func (r *ReviewRepository) CountPendingReviews(hospitalID uint) (int64, error) {
	var n int64
	err := r.pending(hospitalID).Count(&n).Error
	return n, err
}

func (r *ReviewRepository) pending(hospitalID uint) *gorm.DB {
	q := r.db.Model(&models.Review{}).Where("reviews.is_approved = ?", false)
	if hospitalID != 0 {
		q = q.Joins("INNER JOIN doctor_profiles ON doctor_profiles.id = reviews.doctor_id").
			Where("doctor_profiles.hospital_id = ?", hospitalID)
	}
	return q
}

// GetApprovedReviewsByDoctorID lists approved reviews of a doctor, newest first
func (r *ReviewRepository) GetApprovedReviewsByDoctorID(doctorID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("doctor_id = ? AND is_approved = ?", doctorID, true).
		Preload("Patient.User").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// RatingSummary returns the average rating and count of approved reviews
func (r *ReviewRepository) RatingSummary(doctorID uint) (average float64, count int64, err error) {
	var row struct {
		Average *float64
		Count   int64
	}
	err = r.db.Model(&models.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("doctor_id = ? AND is_approved = ?", doctorID, true).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.Average != nil {
		average = *row.Average
	}
	return average, row.Count, nil
}
