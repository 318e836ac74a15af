package service

import (
	"context"
	"fmt"

	"ceylontours/internal/models"
	"ceylontours/internal/repository"
)

// NotificationService reads and acknowledges guide notifications.
// Creation happens inside the booking flow, never through the API.
type NotificationService struct {
	notifRepo *repository.NotificationRepository
}

func NewNotificationService(notifRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// ListForGuide returns the guide's notifications, newest first.
func (s *NotificationService) ListForGuide(ctx context.Context, guideID int64) ([]models.Notification, error) {
	notifications, err := s.notifRepo.ListByGuideID(ctx, guideID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flips the read flag. Scoped to the owning guide.
func (s *NotificationService) MarkRead(ctx context.Context, id, guideID int64) error {
	if err := s.notifRepo.MarkRead(ctx, id, guideID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
