package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"printo/internal/repository"
)

func orderRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	now := time.Now().UTC()
	items := []byte(`[{
		"product_id": "prod-1",
		"seller_id": "seller-1",
		"name": "Business Cards",
		"category": "stationery",
		"unit_price": "199.99",
		"quantity": 2,
		"subtotal": "399.98",
		"commission_percent": "10",
		"commission": "40.00",
		"seller_payout": "359.98"
	}]`)
	return sqlmock.NewRows([]string{
		"id", "user_id", "items", "total_amount", "total_commission", "total_payout",
		"status", "shipping_address", "created_at", "updated_at",
	}).AddRow(
		"order-1", "user-1", items, "399.98", "40.00", "359.98",
		"created", "12 MG Road, Pune", now, now,
	)
}

func TestOrderPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrderPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = ?").
		WithArgs("order-1").
		WillReturnRows(orderRows(t))

	o, err := repo.FindByID(ctx, "order-1")

	assert.NoError(t, err)
	assert.NotNil(t, o)
	assert.Equal(t, "order-1", o.ID)
	assert.Equal(t, "399.98", o.TotalAmount.StringFixed(2))
	if assert.Len(t, o.Items, 1) {
		assert.Equal(t, "seller-1", o.Items[0].SellerID)
		assert.Equal(t, "40.00", o.Items[0].Commission.StringFixed(2))
		assert.Equal(t, "359.98", o.Items[0].SellerPayout.StringFixed(2))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPostgres_ListBySeller(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrderPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)(.+)jsonb_array_elements\\(o.items\\)").
		WithArgs("seller-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM orders o(.+)item->>'seller_id' = \\$1").
		WithArgs("seller-1", 10, 0).
		WillReturnRows(orderRows(t))

	page, err := repo.ListBySeller(ctx, "seller-1", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPostgres_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrderPostgres(db)
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET status = \\$2").
			WithArgs("order-1", "paid").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, "order-1", "paid"))
	})

	t.Run("unknown order", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET status = \\$2").
			WithArgs("missing", "paid").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", "paid"), sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPostgres_FindPaymentByGatewayOrderID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrderPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "order_id", "gateway_order_id", "gateway_payment_id",
		"amount", "status", "created_at", "updated_at",
	}).AddRow("pay-1", "order-1", "order_rzp123", "", "399.98", "pending", now, now)

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE gateway_order_id = ?").
		WithArgs("order_rzp123").
		WillReturnRows(rows)

	p, err := repo.FindPaymentByGatewayOrderID(ctx, "order_rzp123")

	assert.NoError(t, err)
	assert.Equal(t, "pay-1", p.ID)
	assert.Equal(t, "order-1", p.OrderID)
	assert.Equal(t, "pending", p.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPostgres_SellerEarnings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrderPostgres(db)
	ctx := context.Background()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT COUNT\\(DISTINCT o.id\\)").
		WithArgs("seller-1", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count", "revenue", "payout"}).
			AddRow(3, "1200.00", "1080.00"))

	e, err := repo.SellerEarnings(ctx, "seller-1", from, to)

	assert.NoError(t, err)
	assert.Equal(t, 3, e.OrderCount)
	assert.Equal(t, "1200.00", e.Revenue.StringFixed(2))
	assert.Equal(t, "1080.00", e.Payout.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
