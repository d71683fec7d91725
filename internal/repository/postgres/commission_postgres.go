package postgres

import (
	"context"
	"database/sql"

	"printo/internal/model"
	"printo/internal/repository"
)

// CommissionPostgres is a PostgreSQL implementation of repository.CommissionRepository.
type CommissionPostgres struct {
	db *sql.DB
}

// NewCommissionPostgres creates a new CommissionPostgres repository.
func NewCommissionPostgres(db *sql.DB) *CommissionPostgres {
	return &CommissionPostgres{db: db}
}

var _ repository.CommissionRepository = (*CommissionPostgres)(nil)

const commissionColumns = "id, category, percent, created_at, updated_at"

func scanCommission(row interface{ Scan(...any) error }) (*model.CategoryCommission, error) {
	var c model.CategoryCommission
	if err := row.Scan(&c.ID, &c.Category, &c.Percent, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert inserts or replaces the commission row for a category.
func (r *CommissionPostgres) Upsert(ctx context.Context, c *model.CategoryCommission) (*model.CategoryCommission, error) {
	const q = `
		INSERT INTO category_commissions (id, category, percent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category) DO UPDATE SET percent = EXCLUDED.percent, updated_at = now()
		RETURNING ` + commissionColumns
	row := r.db.QueryRowContext(ctx, q, c.ID, c.Category, c.Percent, c.CreatedAt, c.UpdatedAt)
	return scanCommission(row)
}

// FindByCategory fetches the commission row for a category.
func (r *CommissionPostgres) FindByCategory(ctx context.Context, category string) (*model.CategoryCommission, error) {
	const q = `SELECT ` + commissionColumns + ` FROM category_commissions WHERE category = $1`
	return scanCommission(r.db.QueryRowContext(ctx, q, category))
}

// List returns all commission rows.
func (r *CommissionPostgres) List(ctx context.Context) ([]model.CategoryCommission, error) {
	const q = `SELECT ` + commissionColumns + ` FROM category_commissions ORDER BY category`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CategoryCommission, 0)
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Delete removes the commission row for a category. Returns nil if the row
// was deleted or did not exist.
func (r *CommissionPostgres) Delete(ctx context.Context, category string) error {
	const q = `DELETE FROM category_commissions WHERE category = $1`
	_, err := r.db.ExecContext(ctx, q, category)
	return err
}
