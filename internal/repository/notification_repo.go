package repository

import (
	"time"

	"hospital-management/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateNotification creates a new notification
func (r *NotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetNotificationsByUserID lists a user's notifications newest first
func (r *NotificationRepository) GetNotificationsByUserID(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkAllRead marks every unread notification of a user as read
func (r *NotificationRepository) MarkAllRead(userID uint, at time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error
}

// CountUnread counts unread notifications of a user
func (r *NotificationRepository) CountUnread(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}
