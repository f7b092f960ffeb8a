package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devboard/devboard/internal/models"
	"github.com/devboard/devboard/internal/notify"
	"github.com/devboard/devboard/internal/repository"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotificationInvalid  = errors.New("notification title and message are required")
)

// NotificationService handles per-user notifications.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	sink             notify.Sink
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository, sink notify.Sink) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		sink:             sink,
	}
}

// Send stores a notification for a user and pushes it best-effort.
func (s *NotificationService) Send(userID uint64, title, message string) (*models.Notification, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(message) == "" {
		return nil, ErrNotificationInvalid
	}

	notification := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.sink.EmitTo(userID, notify.EventNotification, map[string]interface{}{
		"id":      notification.ID,
		"title":   notification.Title,
		"message": notification.Message,
	})

	return notification, nil
}

// List returns a user's notifications, newest-first.
func (s *NotificationService) List(userID uint64) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marks one of the caller's notifications as read.
func (s *NotificationService) MarkRead(id, userID uint64) error {
	rows, err := s.notificationRepo.MarkRead(id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
