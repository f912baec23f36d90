package service

import (
	"fmt"
	"time"

	"hospital-management/internal/models"
	"hospital-management/internal/repository"
	"hospital-management/internal/session"
)

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	now              func() time.Time
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo, now: time.Now}
}

// GetNotifications lists the session user's notifications newest first and marks them read.
// The returned slice reflects the state before marking.
func (s *NotificationService) GetNotifications(identity session.Identity) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.GetNotificationsByUserID(identity.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.notificationRepo.MarkAllRead(identity.UserID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return notifications, nil
}

// UnreadCount counts the session user's unread notifications
func (s *NotificationService) UnreadCount(identity session.Identity) (int64, error) {
	return s.notificationRepo.CountUnread(identity.UserID)
}
