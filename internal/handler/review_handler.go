package handler

import (
	"hospital-management/internal/middleware"
	"hospital-management/internal/service"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// CreateReview stores a pending review from the session patient
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req service.ReviewInput
	if !utils.BindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(middleware.GetIdentity(c), req)
	if err != nil {
		respondError(c, err, "Failed to create review")
		return
	}
	utils.CreatedResponse(c, review)
}

// GetPendingReviews lists reviews awaiting moderation
func (h *ReviewHandler) GetPendingReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetPendingReviews(middleware.GetIdentity(c))
	if err != nil {
		respondError(c, err, "Failed to fetch reviews")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// GetDoctorReviews lists approved reviews of a doctor
func (h *ReviewHandler) GetDoctorReviews(c *gin.Context) {
	id, ok := parseID(c, "id", "doctor")
	if !ok {
		return
	}

	reviews, err := h.reviewService.GetDoctorReviews(id)
	if err != nil {
		respondError(c, err, "Failed to fetch reviews")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// ApproveReview publishes a review
func (h *ReviewHandler) ApproveReview(c *gin.Context) {
	id, ok := parseID(c, "id", "review")
	if !ok {
		return
	}
	if err := h.reviewService.ApproveReview(middleware.GetIdentity(c), id); err != nil {
		respondError(c, err, "Failed to approve review")
		return
	}
	utils.MessageResponse(c, "Review approved")
}

// RejectReview deletes a pending review
func (h *ReviewHandler) RejectReview(c *gin.Context) {
	id, ok := parseID(c, "id", "review")
	if !ok {
		return
	}
	if err := h.reviewService.RejectReview(middleware.GetIdentity(c), id); err != nil {
		respondError(c, err, "Failed to reject review")
		return
	}
	utils.MessageResponse(c, "Review rejected")
}
