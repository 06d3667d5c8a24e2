package services

import (
	"context"
	"encoding/json"
	"fmt"

	"pharmahub/internal/models"
	"pharmahub/internal/repositories"

	log "github.com/sirupsen/logrus"
)

// NotificationService turns order events into per-user notifications.
type NotificationService struct {
	repo repositories.NotificationRepository
}

func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// HandleOrderEvent stores a notification for the order's owner. Guest orders are skipped.
func (s *NotificationService) HandleOrderEvent(ctx context.Context, event OrderEvent) error {
	if event.UserID == nil {
		return nil
	}

	orderID := event.OrderID
	n := &models.Notification{
		UserID:  event.UserID,
		OrderID: &orderID,
		Type:    event.Type,
	}
	switch event.Type {
	case models.NotificationOrderCreated:
		n.Title = "Pesanan diterima"
		n.Message = fmt.Sprintf("Pesanan %s sebesar %.2f telah kami terima.", event.OrderNumber, event.Total)
	case models.NotificationOrderStatusUpdated:
		n.Title = "Status pesanan diperbarui"
		n.Message = fmt.Sprintf("Pesanan %s: status %s, pembayaran %s.", event.OrderNumber, event.Status, event.PaymentStatus)
	default:
		log.WithField("type", event.Type).Debug("Ignoring unknown order event")
		return nil
	}

	return s.repo.Create(ctx, n)
}

// HandleMessage decodes a broker message body and handles the event it carries.
func (s *NotificationService) HandleMessage(ctx context.Context, body []byte) error {
	var event OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode order event: %w", err)
	}
	return s.HandleOrderEvent(ctx, event)
}

func (s *NotificationService) ListForUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	return s.repo.MarkRead(ctx, userID, id)
}
