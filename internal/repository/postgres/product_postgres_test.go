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

func productRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "seller_id", "name", "description", "category", "price", "stock",
		"variants", "image_keys", "active", "created_at", "updated_at",
	}).AddRow(
		"prod-1", "seller-1", "Business Cards", "300gsm matte", "stationery",
		"199.99", 40,
		[]byte(`[{"color":"white","size":"90x55","stock":40}]`),
		[]byte(`["products/prod-1/a.png"]`),
		true, now, now,
	)
}

func TestProductPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id = ?").
			WithArgs("prod-1").
			WillReturnRows(productRows(t))

		p, err := repo.FindByID(ctx, "prod-1")

		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.Equal(t, "prod-1", p.ID)
		assert.Equal(t, "199.99", p.Price.StringFixed(2))
		if assert.Len(t, p.Variants, 1) {
			assert.Equal(t, "white", p.Variants[0].Color)
			assert.Equal(t, 40, p.Variants[0].Stock)
		}
		assert.Equal(t, []string{"products/prod-1/a.png"}, p.ImageKeys)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, p)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()

	t.Run("category filter", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products WHERE category = \\$1 AND active = true").
			WithArgs("stationery").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM products WHERE category = \\$1 AND active = true ORDER BY created_at DESC, id DESC LIMIT \\$2 OFFSET \\$3").
			WithArgs("stationery", 10, 0).
			WillReturnRows(productRows(t))

		page, err := repo.List(ctx,
			repository.ProductFilter{Category: "stationery", ActiveOnly: true},
			repository.PageQuery{Limit: 10, Offset: 0},
		)

		assert.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, "prod-1", page.Items[0].ID)
	})

	t.Run("no filters", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products$").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM products ORDER BY created_at DESC, id DESC LIMIT \\$1 OFFSET \\$2").
			WithArgs(20, 20).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "seller_id", "name", "description", "category", "price", "stock",
				"variants", "image_keys", "active", "created_at", "updated_at",
			}))

		page, err := repo.List(ctx, repository.ProductFilter{}, repository.PageQuery{Limit: 20, Offset: 20})

		assert.NoError(t, err)
		assert.Equal(t, 0, page.Total)
		assert.Empty(t, page.Items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgres_DecrementStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()

	t.Run("enough stock", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET stock = stock - \\$2").
			WithArgs("prod-1", 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.DecrementStock(ctx, "prod-1", 3)

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET stock = stock - \\$2").
			WithArgs("prod-1", 999).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.DecrementStock(ctx, "prod-1", 999)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgres_AddImageKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()

	t.Run("appends key", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET image_keys = image_keys").
			WithArgs("prod-1", "products/prod-1/b.png").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AddImageKey(ctx, "prod-1", "products/prod-1/b.png")

		assert.NoError(t, err)
	})

	t.Run("unknown product", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET image_keys = image_keys").
			WithArgs("missing", "products/missing/b.png").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.AddImageKey(ctx, "missing", "products/missing/b.png")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgres_FindByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()

	t.Run("empty input skips query", func(t *testing.T) {
		items, err := repo.FindByIDs(ctx, nil)

		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("builds placeholder list", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id IN \\(\\$1, \\$2\\)").
			WithArgs("prod-1", "prod-2").
			WillReturnRows(productRows(t))

		items, err := repo.FindByIDs(ctx, []string{"prod-1", "prod-2"})

		assert.NoError(t, err)
		assert.Len(t, items, 1)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
