package postgres

import (
	"context"
	"database/sql"

	"printo/internal/model"
	"printo/internal/repository"
)

// SellerPostgres is a PostgreSQL implementation of repository.SellerRepository.
type SellerPostgres struct {
	db *sql.DB
}

// NewSellerPostgres creates a new SellerPostgres repository.
func NewSellerPostgres(db *sql.DB) *SellerPostgres {
	return &SellerPostgres{db: db}
}

var _ repository.SellerRepository = (*SellerPostgres)(nil)

const sellerColumns = "id, user_id, COALESCE(parent_id::text, ''), shop_name, phone, address, gstin, verification, created_at, updated_at"

func scanSeller(row interface{ Scan(...any) error }) (*model.Seller, error) {
	var s model.Seller
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.ParentID,
		&s.ShopName,
		&s.Phone,
		&s.Address,
		&s.GSTIN,
		&s.Verification,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new seller row. An empty ParentID is stored as NULL.
func (r *SellerPostgres) Create(ctx context.Context, s *model.Seller) (*model.Seller, error) {
	const q = `
		INSERT INTO sellers (id, user_id, parent_id, shop_name, phone, address, gstin, verification, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + sellerColumns
	row := r.db.QueryRowContext(ctx, q,
		s.ID,
		s.UserID,
		s.ParentID,
		s.ShopName,
		s.Phone,
		s.Address,
		s.GSTIN,
		s.Verification,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return scanSeller(row)
}

// FindByID fetches a single seller by its ID.
func (r *SellerPostgres) FindByID(ctx context.Context, id string) (*model.Seller, error) {
	const q = `SELECT ` + sellerColumns + ` FROM sellers WHERE id = $1`
	return scanSeller(r.db.QueryRowContext(ctx, q, id))
}

// FindByUserID fetches the seller profile owned by a user.
func (r *SellerPostgres) FindByUserID(ctx context.Context, userID string) (*model.Seller, error) {
	const q = `SELECT ` + sellerColumns + ` FROM sellers WHERE user_id = $1`
	return scanSeller(r.db.QueryRowContext(ctx, q, userID))
}

// List returns sellers using LIMIT/OFFSET pagination and a total count.
func (r *SellerPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Seller], error) {
	const qCount = `SELECT COUNT(*) FROM sellers`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + sellerColumns + `
		FROM sellers
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Seller, 0)
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Seller]{Items: items, Total: total}, nil
}

// ListChildren returns sellers whose parent_id equals parentID.
func (r *SellerPostgres) ListChildren(ctx context.Context, parentID string) ([]model.Seller, error) {
	const q = `SELECT ` + sellerColumns + ` FROM sellers WHERE parent_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Seller, 0)
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

// Update rewrites the mutable profile fields and returns the stored record.
func (r *SellerPostgres) Update(ctx context.Context, s *model.Seller) (*model.Seller, error) {
	const q = `
		UPDATE sellers
		SET shop_name = $2, phone = $3, address = $4, gstin = $5, parent_id = NULLIF($6, '')::uuid, updated_at = now()
		WHERE id = $1
		RETURNING ` + sellerColumns
	row := r.db.QueryRowContext(ctx, q, s.ID, s.ShopName, s.Phone, s.Address, s.GSTIN, s.ParentID)
	return scanSeller(row)
}

// UpdateVerification sets the admin-controlled verification status.
func (r *SellerPostgres) UpdateVerification(ctx context.Context, id, status string) error {
	const q = `UPDATE sellers SET verification = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
