package handler

import (
	"hospital-management/internal/middleware"
	"hospital-management/internal/service"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GetNotifications lists and marks read the caller's notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.notificationService.GetNotifications(middleware.GetIdentity(c))
	if err != nil {
		respondError(c, err, "Failed to fetch notifications")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// UnreadCount returns the number of unread notifications
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	n, err := h.notificationService.UnreadCount(middleware.GetIdentity(c))
	if err != nil {
		respondError(c, err, "Failed to count notifications")
		return
	}
	utils.SuccessResponse(c, gin.H{"unread": n})
}
