package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"vtc/internal/model"
	"vtc/internal/repository"
	"vtc/internal/websocket"

	"github.com/google/uuid"
)

// NotificationService persists per-user notifications and pushes them live to
// connected WebSocket clients. Delivery is best-effort: a hub without the
// recipient online simply drops the push, the row remains readable later.
type NotificationService interface {
	Notify(ctx context.Context, userID uuid.UUID, notifType, title, message string, payload map[string]string)
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	notifications repository.NotificationRepository
	hub           *websocket.Hub
}

func NewNotificationService(notifications repository.NotificationRepository, hub *websocket.Hub) NotificationService {
	return &notificationService{notifications: notifications, hub: hub}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, notifType, title, message string, payload map[string]string) {
	payloadJSON, _ := json.Marshal(payload)

	n := model.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Payload: string(payloadJSON),
	}
	if err := s.notifications.Create(ctx, &n); err != nil {
		log.Printf("failed to persist notification for %s: %v", userID, err)
		return
	}

	if s.hub == nil {
		return
	}
	frame, err := json.Marshal(n)
	if err != nil {
		return
	}
	s.hub.SendToUser(userID.String(), frame)
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]model.Notification, int64, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid user id: %w", err)
	}
	return s.notifications.ListByUser(ctx, id, unreadOnly, page, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	notifID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid notification id: %w", err)
	}
	user, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	return s.notifications.MarkRead(ctx, notifID, user)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	user, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	return s.notifications.MarkAllRead(ctx, user)
}
