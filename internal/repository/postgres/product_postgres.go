package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"printo/internal/model"
	"printo/internal/repository"
)

// ProductPostgres is a PostgreSQL implementation of repository.ProductRepository.
// Variants and image keys are embedded in the row as JSONB, document-style.
type ProductPostgres struct {
	db *sql.DB
}

// NewProductPostgres creates a new ProductPostgres repository.
func NewProductPostgres(db *sql.DB) *ProductPostgres {
	return &ProductPostgres{db: db}
}

var _ repository.ProductRepository = (*ProductPostgres)(nil)

const productColumns = "id, seller_id, name, description, category, price, stock, variants, image_keys, active, created_at, updated_at"

func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	var (
		p            model.Product
		variantsJSON []byte
		imagesJSON   []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.SellerID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.Stock,
		&variantsJSON,
		&imagesJSON,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(variantsJSON) > 0 {
		if err := json.Unmarshal(variantsJSON, &p.Variants); err != nil {
			return nil, fmt.Errorf("decode variants: %w", err)
		}
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.ImageKeys); err != nil {
			return nil, fmt.Errorf("decode image keys: %w", err)
		}
	}
	return &p, nil
}

// Create inserts a new product row and returns the stored record.
func (r *ProductPostgres) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	variantsJSON, err := json.Marshal(p.Variants)
	if err != nil {
		return nil, fmt.Errorf("encode variants: %w", err)
	}
	if p.Variants == nil {
		variantsJSON = []byte("[]")
	}
	imagesJSON, err := json.Marshal(p.ImageKeys)
	if err != nil {
		return nil, fmt.Errorf("encode image keys: %w", err)
	}
	if p.ImageKeys == nil {
		imagesJSON = []byte("[]")
	}

	const q = `
		INSERT INTO products (id, seller_id, name, description, category, price, stock, variants, image_keys, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + productColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.SellerID,
		p.Name,
		p.Description,
		p.Category,
		p.Price,
		p.Stock,
		variantsJSON,
		imagesJSON,
		p.Active,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return scanProduct(row)
}

// FindByID fetches a single product by its ID.
func (r *ProductPostgres) FindByID(ctx context.Context, id string) (*model.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRowContext(ctx, q, id))
}

// FindByIDs fetches products matching the given ids.
func (r *ProductPostgres) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	q := `SELECT ` + productColumns + ` FROM products WHERE id IN (` + strings.Join(placeholders, ", ") + `)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// List returns products matching the filter with LIMIT/OFFSET pagination.
func (r *ProductPostgres) List(ctx context.Context, f repository.ProductFilter, pq repository.PageQuery) (*repository.PageResult[model.Product], error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.SellerID != "" {
		args = append(args, f.SellerID)
		where = append(where, fmt.Sprintf("seller_id = $%d", len(args)))
	}
	if f.ActiveOnly {
		where = append(where, "active = true")
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+cond, args...).Scan(&total); err != nil {
		return nil, err
	}

	args = append(args, pq.Limit, pq.Offset)
	qList := fmt.Sprintf(
		"SELECT "+productColumns+" FROM products"+cond+" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		len(args)-1, len(args),
	)
	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Product]{Items: items, Total: total}, nil
}

// Update rewrites the mutable product fields and returns the stored record.
func (r *ProductPostgres) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	variantsJSON, err := json.Marshal(p.Variants)
	if err != nil {
		return nil, fmt.Errorf("encode variants: %w", err)
	}
	if p.Variants == nil {
		variantsJSON = []byte("[]")
	}

	const q = `
		UPDATE products
		SET name = $2, description = $3, category = $4, price = $5, stock = $6, variants = $7, updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns
	row := r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.Description, p.Category, p.Price, p.Stock, variantsJSON)
	return scanProduct(row)
}

// SetActive flips the soft-delete flag.
func (r *ProductPostgres) SetActive(ctx context.Context, id string, active bool) error {
	const q = `UPDATE products SET active = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, active)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AddImageKey appends a storage key to the product's image list.
func (r *ProductPostgres) AddImageKey(ctx context.Context, id, key string) error {
	const q = `UPDATE products SET image_keys = image_keys || to_jsonb($2::text), updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DecrementStock subtracts qty when enough stock remains. The condition keeps
// stock non-negative without locking; the caller treats a miss as best-effort.
func (r *ProductPostgres) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	const q = `UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`
	res, err := r.db.ExecContext(ctx, q, id, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrementStock adds qty back after a cancellation.
func (r *ProductPostgres) IncrementStock(ctx context.Context, id string, qty int) error {
	const q = `UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, qty)
	return err
}
