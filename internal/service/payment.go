package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"printo/internal/broker"
	"printo/internal/logger"
	"printo/internal/metrics"
	"printo/internal/model"
	"printo/internal/payment"
	"printo/internal/repository"
)

// VerifyPaymentRequest carries the fields the client posts back after a
// gateway checkout completes.
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
	UserEmail        string `json:"-"`
}

// PaymentService drives the gateway checkout flow.
type PaymentService interface {
	// CreateGatewayOrder registers the order with the payment gateway and
	// records a pending payment row.
	CreateGatewayOrder(ctx context.Context, orderID string) (*model.Payment, error)
	// VerifyAndCapture checks the checkout signature and, on success, marks
	// the payment captured and the order paid.
	VerifyAndCapture(ctx context.Context, req *VerifyPaymentRequest) (*model.Payment, error)
}

type paymentService struct {
	orders    repository.OrderRepository
	gateway   payment.Gateway
	publisher *broker.EventPublisher
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(orders repository.OrderRepository, gateway payment.Gateway, publisher *broker.EventPublisher) PaymentService {
	return &paymentService{orders: orders, gateway: gateway, publisher: publisher}
}

func (s *paymentService) CreateGatewayOrder(ctx context.Context, orderID string) (*model.Payment, error) {
	if orderID == "" {
		return nil, ErrIDRequired
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.Status != model.OrderStatusCreated {
		return nil, fmt.Errorf("order %s is %s, payment needs a freshly created order", order.ID, order.Status)
	}

	metrics.PaymentAttemptsTotal.Inc()

	gwOrderID, err := s.gateway.CreateOrder(order.TotalAmount, order.ID)
	if err != nil {
		metrics.PaymentFailedTotal.Inc()
		return nil, err
	}

	now := time.Now().UTC()
	p := &model.Payment{
		ID:             uuid.NewString(),
		OrderID:        order.ID,
		GatewayOrderID: gwOrderID,
		Amount:         order.TotalAmount,
		Status:         model.PaymentStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	stored, err := s.orders.CreatePayment(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	logger.L().Info("gateway order created",
		zap.String("order_id", order.ID),
		zap.String("gateway_order_id", gwOrderID),
		zap.String("amount", order.TotalAmount.StringFixed(2)))
	return stored, nil
}

func (s *paymentService) VerifyAndCapture(ctx context.Context, req *VerifyPaymentRequest) (*model.Payment, error) {
	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.Signature == "" {
		return nil, fmt.Errorf("gateway order id, payment id and signature are required")
	}
	log := logger.L()

	p, err := s.orders.FindPaymentByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		metrics.PaymentFailedTotal.Inc()
		if err := s.orders.UpdatePaymentStatus(ctx, p.ID, model.PaymentStatusFailed, req.GatewayPaymentID); err != nil {
			log.Error("mark payment failed", zap.String("payment_id", p.ID), zap.Error(err))
		}
		log.Warn("payment signature mismatch",
			zap.String("payment_id", p.ID),
			zap.String("gateway_order_id", req.GatewayOrderID))
		return nil, ErrPaymentSignature
	}

	if err := s.orders.UpdatePaymentStatus(ctx, p.ID, model.PaymentStatusSuccess, req.GatewayPaymentID); err != nil {
		return nil, fmt.Errorf("mark payment captured: %w", err)
	}
	p.Status = model.PaymentStatusSuccess
	p.GatewayPayID = req.GatewayPaymentID
	metrics.PaymentSuccessTotal.Inc()

	order, err := s.orders.FindByID(ctx, p.OrderID)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", p.OrderID, err)
	}
	if model.CanTransition(order.Status, model.OrderStatusPaid) {
		if err := s.orders.UpdateStatus(ctx, order.ID, model.OrderStatusPaid); err != nil {
			return nil, fmt.Errorf("mark order paid: %w", err)
		}
		order.Status = model.OrderStatusPaid
	}

	log.Info("payment captured",
		zap.String("payment_id", p.ID),
		zap.String("order_id", order.ID))

	if s.publisher != nil {
		if err := s.publisher.PublishOrderEvent(ctx, broker.EventTypeOrderPaid, order, req.UserEmail); err != nil {
			log.Error("publish order paid event", zap.Error(err))
		}
	}
	return p, nil
}
