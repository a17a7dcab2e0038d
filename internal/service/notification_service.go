package service

import (
	"context"

	"issue-tracker/internal/entity"
	"issue-tracker/internal/repository"
)

// NotificationService serves a user's notification feed.
type NotificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) ListForUser(ctx context.Context, userID int) ([]entity.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

// MarkRead flips a notification to read. Idempotent.
func (s *NotificationService) MarkRead(ctx context.Context, id int) (*entity.Notification, error) {
	return s.notifications.MarkRead(ctx, id)
}
