package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"printo/internal/model"
	"printo/internal/repository"
)

// OrderPostgres is a PostgreSQL implementation of repository.OrderRepository.
// Line items are embedded in the order row as JSONB; earnings aggregates
// unnest them with jsonb_array_elements.
type OrderPostgres struct {
	db *sql.DB
}

// NewOrderPostgres creates a new OrderPostgres repository.
func NewOrderPostgres(db *sql.DB) *OrderPostgres {
	return &OrderPostgres{db: db}
}

var _ repository.OrderRepository = (*OrderPostgres)(nil)

const orderColumns = "id, user_id, items, total_amount, total_commission, total_payout, status, shipping_address, created_at, updated_at"

func scanOrder(row interface{ Scan(...any) error }) (*model.Order, error) {
	var (
		o         model.Order
		itemsJSON []byte
	)
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&itemsJSON,
		&o.TotalAmount,
		&o.TotalCommission,
		&o.TotalPayout,
		&o.Status,
		&o.ShippingAddress,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &o, nil
}

// Create inserts a new order row and returns the stored record.
func (r *OrderPostgres) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}

	const q = `
		INSERT INTO orders (id, user_id, items, total_amount, total_commission, total_payout, status, shipping_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + orderColumns
	row := r.db.QueryRowContext(ctx, q,
		o.ID,
		o.UserID,
		itemsJSON,
		o.TotalAmount,
		o.TotalCommission,
		o.TotalPayout,
		o.Status,
		o.ShippingAddress,
		o.CreatedAt,
		o.UpdatedAt,
	)
	return scanOrder(row)
}

// FindByID fetches a single order by its ID.
func (r *OrderPostgres) FindByID(ctx context.Context, id string) (*model.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(r.db.QueryRowContext(ctx, q, id))
}

func (r *OrderPostgres) listPage(ctx context.Context, qCount, qList string, arg string, pq repository.PageQuery) (*repository.PageResult[model.Order], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, arg).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, qList, arg, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Order]{Items: items, Total: total}, nil
}

// ListByUser returns a user's orders, newest first.
func (r *OrderPostgres) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.Order], error) {
	const qCount = `SELECT COUNT(*) FROM orders WHERE user_id = $1`
	const qList = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	return r.listPage(ctx, qCount, qList, userID, pq)
}

// ListBySeller returns orders containing at least one line for the seller.
func (r *OrderPostgres) ListBySeller(ctx context.Context, sellerID string, pq repository.PageQuery) (*repository.PageResult[model.Order], error) {
	const qCount = `
		SELECT COUNT(*)
		FROM orders o
		WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements(o.items) item
			WHERE item->>'seller_id' = $1
		)
	`
	const qList = `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements(o.items) item
			WHERE item->>'seller_id' = $1
		)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	return r.listPage(ctx, qCount, qList, sellerID, pq)
}

// UpdateStatus sets the order status.
func (r *OrderPostgres) UpdateStatus(ctx context.Context, id, status string) error {
	const q = `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const paymentColumns = "id, order_id, gateway_order_id, gateway_payment_id, amount, status, created_at, updated_at"

func scanPayment(row interface{ Scan(...any) error }) (*model.Payment, error) {
	var p model.Payment
	if err := row.Scan(
		&p.ID,
		&p.OrderID,
		&p.GatewayOrderID,
		&p.GatewayPayID,
		&p.Amount,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePayment inserts a payment row and returns the stored record.
func (r *OrderPostgres) CreatePayment(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	const q = `
		INSERT INTO payments (id, order_id, gateway_order_id, gateway_payment_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + paymentColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.OrderID,
		p.GatewayOrderID,
		p.GatewayPayID,
		p.Amount,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return scanPayment(row)
}

// FindPaymentByGatewayOrderID fetches a payment by the gateway's order id.
func (r *OrderPostgres) FindPaymentByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE gateway_order_id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, q, gatewayOrderID))
}

// UpdatePaymentStatus sets the payment status and gateway payment id.
func (r *OrderPostgres) UpdatePaymentStatus(ctx context.Context, id, status, gatewayPayID string) error {
	const q = `UPDATE payments SET status = $2, gateway_payment_id = $3, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, status, gatewayPayID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AdminEarnings aggregates platform-wide totals over non-cancelled orders.
func (r *OrderPostgres) AdminEarnings(ctx context.Context, from, to time.Time) (*model.AdminEarnings, error) {
	const q = `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0), COALESCE(SUM(total_commission), 0)
		FROM orders
		WHERE status <> 'cancelled' AND created_at >= $1 AND created_at < $2
	`
	e := &model.AdminEarnings{From: from, To: to}
	if err := r.db.QueryRowContext(ctx, q, from, to).Scan(&e.OrderCount, &e.GrossRevenue, &e.TotalCommission); err != nil {
		return nil, err
	}
	return e, nil
}

// SellerEarnings aggregates one seller's totals from embedded order lines.
func (r *OrderPostgres) SellerEarnings(ctx context.Context, sellerID string, from, to time.Time) (*model.SellerEarnings, error) {
	const q = `
		SELECT COUNT(DISTINCT o.id),
		       COALESCE(SUM((item->>'subtotal')::numeric), 0),
		       COALESCE(SUM((item->>'seller_payout')::numeric), 0)
		FROM orders o, jsonb_array_elements(o.items) item
		WHERE item->>'seller_id' = $1
		  AND o.status <> 'cancelled'
		  AND o.created_at >= $2 AND o.created_at < $3
	`
	e := &model.SellerEarnings{SellerID: sellerID, From: from, To: to}
	if err := r.db.QueryRowContext(ctx, q, sellerID, from, to).Scan(&e.OrderCount, &e.Revenue, &e.Payout); err != nil {
		return nil, err
	}
	return e, nil
}
