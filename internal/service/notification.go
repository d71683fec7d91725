package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"printo/internal/broker"
	"printo/internal/logger"
	"printo/internal/mail"
	"printo/internal/metrics"
	"printo/internal/model"
	"printo/internal/repository"
)

// NotificationListResult is the service-level DTO for paginated notifications.
type NotificationListResult struct {
	Items []model.Notification `json:"data"`
	Total int                  `json:"total"`
}

// NotificationService reads in-app notifications and turns order events into
// notifications plus email.
type NotificationService interface {
	List(ctx context.Context, userID string, limit, offset int) (*NotificationListResult, error)
	MarkRead(ctx context.Context, id, userID string) error
	UnreadCount(ctx context.Context, userID string) (int, error)

	// HandleOrderEvent consumes one raw order event from the broker. Email
	// delivery is best-effort; the in-app notification is the source of truth.
	HandleOrderEvent(ctx context.Context, raw []byte) error
}

type notificationService struct {
	notifications repository.NotificationRepository
	mailer        mail.Mailer
}

// NewNotificationService constructs a NotificationService. mailer may be nil
// when SMTP is not configured.
func NewNotificationService(notifications repository.NotificationRepository, mailer mail.Mailer) NotificationService {
	return &notificationService{notifications: notifications, mailer: mailer}
}

func (s *notificationService) List(ctx context.Context, userID string, limit, offset int) (*NotificationListResult, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	res, err := s.notifications.ListByUser(ctx, userID, normalizePage(limit, offset))
	if err != nil {
		return nil, err
	}
	return &NotificationListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	if id == "" || userID == "" {
		return ErrIDRequired
	}
	if err := s.notifications.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrIDRequired
	}
	return s.notifications.CountUnread(ctx, userID)
}

func (s *notificationService) HandleOrderEvent(ctx context.Context, raw []byte) error {
	var ev broker.OrderEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("decode order event: %w", err)
	}

	title, body := composeOrderMessage(&ev)
	if title == "" {
		logger.L().Debug("ignoring order event", zap.String("event_type", ev.EventType))
		return nil
	}

	n := &model.Notification{
		ID:        uuid.NewString(),
		UserID:    ev.UserID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	metrics.NotificationsSentTotal.WithLabelValues("in_app").Inc()

	if s.mailer != nil && ev.UserEmail != "" {
		if err := s.mailer.Send(ev.UserEmail, title, fmt.Sprintf("<p>%s</p>", body)); err != nil {
			logger.L().Warn("order email failed",
				zap.String("order_id", ev.OrderID),
				zap.Error(err))
		} else {
			metrics.NotificationsSentTotal.WithLabelValues("email").Inc()
		}
	}

	logger.L().Info("order notification stored",
		zap.String("order_id", ev.OrderID),
		zap.String("event_type", ev.EventType))
	return nil
}

func composeOrderMessage(ev *broker.OrderEvent) (title, body string) {
	switch ev.EventType {
	case broker.EventTypeOrderPlaced:
		return "Order placed",
			fmt.Sprintf("Your order %s for %s was placed successfully.", ev.OrderID, ev.TotalAmount)
	case broker.EventTypeOrderPaid:
		return "Payment received",
			fmt.Sprintf("Payment of %s for order %s was received.", ev.TotalAmount, ev.OrderID)
	case broker.EventTypeOrderCancelled:
		return "Order cancelled",
			fmt.Sprintf("Your order %s was cancelled.", ev.OrderID)
	case broker.EventTypeOrderStatus:
		return "Order update",
			fmt.Sprintf("Your order %s is now %s.", ev.OrderID, ev.Status)
	default:
		return "", ""
	}
}
