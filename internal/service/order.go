package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"printo/internal/broker"
	"printo/internal/cache"
	"printo/internal/logger"
	"printo/internal/metrics"
	"printo/internal/model"
	"printo/internal/repository"
)

const idempotencyTTL = 24 * time.Hour

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the input for placing an order.
type CreateOrderRequest struct {
	UserID          string             `json:"-"`
	UserEmail       string             `json:"-"`
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress string             `json:"shipping_address"`
	IdempotencyKey  string             `json:"idempotency_key,omitempty"`
}

// OrderListResult is the service-level DTO for paginated orders.
type OrderListResult struct {
	Items []model.Order `json:"data"`
	Total int           `json:"total"`
}

// OrderService defines the order lifecycle use cases.
type OrderService interface {
	// Create validates items, computes the commission/payout breakdown, inserts
	// the order, and decrements stock best-effort afterwards.
	Create(ctx context.Context, req *CreateOrderRequest) (*model.Order, error)

	Get(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) (*OrderListResult, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) (*OrderListResult, error)

	// UpdateStatus moves the order along the status machine.
	UpdateStatus(ctx context.Context, id, status string) (*model.Order, error)

	// Cancel cancels the order and restores stock best-effort.
	Cancel(ctx context.Context, id string) (*model.Order, error)
}

type orderService struct {
	orders      repository.OrderRepository
	products    repository.ProductRepository
	sellers     repository.SellerRepository
	commissions repository.CommissionRepository
	redis       *cache.Client
	publisher   *broker.EventPublisher

	defaultPercent decimal.Decimal
}

// NewOrderService constructs a new OrderService. defaultPercent applies to
// categories without a commission row; an unparseable value falls back to 10.
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	sellers repository.SellerRepository,
	commissions repository.CommissionRepository,
	redis *cache.Client,
	publisher *broker.EventPublisher,
	defaultPercent string,
) OrderService {
	pct, err := decimal.NewFromString(defaultPercent)
	if err != nil || !model.ValidCommissionPercent(pct) {
		pct = decimal.NewFromInt(10)
	}
	return &orderService{
		orders:         orders,
		products:       products,
		sellers:        sellers,
		commissions:    commissions,
		redis:          redis,
		publisher:      publisher,
		defaultPercent: pct,
	}
}

func (s *orderService) Create(ctx context.Context, req *CreateOrderRequest) (*model.Order, error) {
	log := logger.L()

	if req.UserID == "" {
		return nil, ErrIDRequired
	}
	if len(req.Items) == 0 {
		metrics.OrdersFailedTotal.WithLabelValues("empty").Inc()
		return nil, ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			metrics.OrdersFailedTotal.WithLabelValues("invalid_items").Inc()
			return nil, fmt.Errorf("each item needs a product id and a positive quantity")
		}
	}

	// Replay: a repeated idempotency key returns the original order.
	if req.IdempotencyKey != "" && s.redis != nil {
		if orderID, found, err := s.redis.LookupIdempotencyKey(ctx, req.IdempotencyKey); err != nil {
			log.Warn("idempotency lookup failed", zap.Error(err))
		} else if found {
			log.Info("duplicate order request",
				zap.String("idempotency_key", req.IdempotencyKey),
				zap.String("order_id", orderID))
			return s.Get(ctx, orderID)
		}
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		metrics.OrdersFailedTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	totalAmount := decimal.Zero
	totalCommission := decimal.Zero
	totalPayout := decimal.Zero
	for _, it := range items {
		totalAmount = totalAmount.Add(it.Subtotal)
		totalCommission = totalCommission.Add(it.Commission)
		totalPayout = totalPayout.Add(it.SellerPayout)
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		Items:           items,
		TotalAmount:     totalAmount,
		TotalCommission: totalCommission,
		TotalPayout:     totalPayout,
		Status:          model.OrderStatusCreated,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := s.orders.Create(ctx, order); err != nil {
		metrics.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("create order: %w", err)
	}
	metrics.OrdersCreatedTotal.Inc()
	log.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("total", order.TotalAmount.StringFixed(2)))

	if req.IdempotencyKey != "" && s.redis != nil {
		if err := s.redis.ClaimIdempotencyKey(ctx, req.IdempotencyKey, order.ID, idempotencyTTL); err != nil {
			log.Warn("idempotency claim failed", zap.Error(err))
		}
	}

	// Stock decrement is best-effort: it runs after the insert and is not
	// atomic with it. A miss is logged, the order stands.
	for _, item := range order.Items {
		ok, err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil || !ok {
			metrics.StockDecrementFailedTotal.Inc()
			log.Warn("stock decrement failed",
				zap.String("order_id", order.ID),
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderEvent(ctx, broker.EventTypeOrderPlaced, order, req.UserEmail); err != nil {
			log.Error("publish order placed event", zap.Error(err))
		}
	}
	s.invalidateEarnings(ctx)

	return order, nil
}

// invalidateEarnings drops cached dashboard snapshots so a new or cancelled
// order is visible before their TTL expires. Best-effort.
func (s *orderService) invalidateEarnings(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.InvalidatePattern(ctx, "earnings:*"); err != nil {
		logger.L().Warn("earnings cache invalidation failed", zap.Error(err))
	}
}

// buildItems validates each requested line against the catalog and snapshots
// the commission breakdown.
func (s *orderService) buildItems(ctx context.Context, reqs []OrderItemRequest) ([]model.OrderItem, error) {
	ids := make([]string, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ProductID
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	percentCache := make(map[string]decimal.Decimal)
	items := make([]model.OrderItem, 0, len(reqs))

	for _, r := range reqs {
		p, ok := byID[r.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %s not found", r.ProductID)
		}
		if !p.Active {
			return nil, ErrProductInactive
		}
		if p.Stock < r.Quantity {
			return nil, ErrInsufficientStock
		}

		seller, err := s.sellers.FindByID(ctx, p.SellerID)
		if err != nil {
			return nil, fmt.Errorf("load seller %s: %w", p.SellerID, err)
		}
		if !seller.Verified() {
			return nil, ErrSellerNotVerified
		}

		percent, ok := percentCache[p.Category]
		if !ok {
			percent, err = s.commissionPercent(ctx, p.Category)
			if err != nil {
				return nil, err
			}
			percentCache[p.Category] = percent
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(int64(r.Quantity)))
		commission := subtotal.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)

		items = append(items, model.OrderItem{
			ProductID:         p.ID,
			SellerID:          p.SellerID,
			Name:              p.Name,
			Category:          p.Category,
			UnitPrice:         p.Price,
			Quantity:          r.Quantity,
			Subtotal:          subtotal,
			CommissionPercent: percent,
			Commission:        commission,
			SellerPayout:      subtotal.Sub(commission),
		})
	}

	return items, nil
}

// commissionPercent looks up the category's commission percent, falling back
// to the configured default when no row exists.
func (s *orderService) commissionPercent(ctx context.Context, category string) (decimal.Decimal, error) {
	c, err := s.commissions.FindByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.defaultPercent, nil
		}
		return decimal.Zero, fmt.Errorf("load commission for %s: %w", category, err)
	}
	return c.Percent, nil
}

func (s *orderService) Get(ctx context.Context, id string) (*model.Order, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID string, limit, offset int) (*OrderListResult, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	res, err := s.orders.ListByUser(ctx, userID, normalizePage(limit, offset))
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *orderService) ListBySeller(ctx context.Context, sellerID string, limit, offset int) (*OrderListResult, error) {
	if sellerID == "" {
		return nil, ErrIDRequired
	}
	res, err := s.orders.ListBySeller(ctx, sellerID, normalizePage(limit, offset))
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, fmt.Errorf("unknown order status %q", status)
	}
	if status == model.OrderStatusCancelled {
		return s.Cancel(ctx, id)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(order.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status

	if s.publisher != nil {
		if err := s.publisher.PublishOrderEvent(ctx, broker.EventTypeOrderStatus, order, ""); err != nil {
			logger.L().Error("publish order status event", zap.Error(err))
		}
	}
	return order, nil
}

func (s *orderService) Cancel(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(order.Status, model.OrderStatusCancelled) {
		return nil, ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(ctx, id, model.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = model.OrderStatusCancelled
	metrics.OrdersCancelledTotal.Inc()

	// Restore stock with the same best-effort contract as the decrement.
	log := logger.L()
	for _, item := range order.Items {
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Warn("stock restore failed",
				zap.String("order_id", order.ID),
				zap.String("product_id", item.ProductID),
				zap.Error(err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderEvent(ctx, broker.EventTypeOrderCancelled, order, ""); err != nil {
			log.Error("publish order cancelled event", zap.Error(err))
		}
	}
	s.invalidateEarnings(ctx)
	return order, nil
}

func normalizePage(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}
