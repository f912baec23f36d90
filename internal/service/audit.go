package service

import (
	"hospital-management/internal/models"
	"hospital-management/internal/repository"

	"go.uber.org/zap"
)

// recorder writes best-effort audit entries and notifications. Failures are logged, never returned.
type recorder struct {
	auditRepo        *repository.AuditRepository
	notificationRepo *repository.NotificationRepository
	log              *zap.Logger
}

func newRecorder(auditRepo *repository.AuditRepository, notificationRepo *repository.NotificationRepository, log *zap.Logger) recorder {
	return recorder{
		auditRepo:        auditRepo,
		notificationRepo: notificationRepo,
		log:              log,
	}
}

func (r recorder) audit(userID uint, action, details string) {
	var uid *uint
	if userID != 0 {
		uid = &userID
	}
	if err := r.auditRepo.CreateAuditLog(uid, action, details); err != nil {
		r.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}

func (r recorder) notify(userID uint, title, message, link string) {
	if userID == 0 {
		return
	}
	n := &models.Notification{UserID: userID, Title: title, Message: message, Link: link}
	if err := r.notificationRepo.CreateNotification(n); err != nil {
		r.log.Warn("failed to write notification", zap.Uint("user_id", userID), zap.Error(err))
	}
}
