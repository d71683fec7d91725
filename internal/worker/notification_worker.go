package worker

import (
	"context"
	"errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"printo/internal/broker"
	"printo/internal/logger"
	"printo/internal/service"
)

// NotificationWorker consumes order events and fans them out as in-app
// notifications and email.
type NotificationWorker struct {
	consumer      *broker.Consumer
	notifications service.NotificationService
}

// NewNotificationWorker constructs a NotificationWorker.
func NewNotificationWorker(consumer *broker.Consumer, notifications service.NotificationService) *NotificationWorker {
	return &NotificationWorker{consumer: consumer, notifications: notifications}
}

// Run blocks consuming events until ctx is cancelled.
func (w *NotificationWorker) Run(ctx context.Context) {
	err := w.consumer.Run(ctx, func(ctx context.Context, msg kafka.Message) error {
		return w.notifications.HandleOrderEvent(ctx, msg.Value)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.L().Error("notification worker stopped", zap.Error(err))
	}
}
