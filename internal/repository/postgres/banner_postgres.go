package postgres

import (
	"context"
	"database/sql"

	"printo/internal/model"
	"printo/internal/repository"
)

// BannerPostgres is a PostgreSQL implementation of repository.BannerRepository.
type BannerPostgres struct {
	db *sql.DB
}

// NewBannerPostgres creates a new BannerPostgres repository.
func NewBannerPostgres(db *sql.DB) *BannerPostgres {
	return &BannerPostgres{db: db}
}

var _ repository.BannerRepository = (*BannerPostgres)(nil)

const bannerColumns = "id, title, image_key, link_url, active, created_at, updated_at"

func scanBanner(row interface{ Scan(...any) error }) (*model.Banner, error) {
	var b model.Banner
	if err := row.Scan(&b.ID, &b.Title, &b.ImageKey, &b.LinkURL, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new banner row.
func (r *BannerPostgres) Create(ctx context.Context, b *model.Banner) (*model.Banner, error) {
	const q = `
		INSERT INTO banners (id, title, image_key, link_url, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bannerColumns
	row := r.db.QueryRowContext(ctx, q, b.ID, b.Title, b.ImageKey, b.LinkURL, b.Active, b.CreatedAt, b.UpdatedAt)
	return scanBanner(row)
}

// FindByID fetches a single banner by its ID.
func (r *BannerPostgres) FindByID(ctx context.Context, id string) (*model.Banner, error) {
	const q = `SELECT ` + bannerColumns + ` FROM banners WHERE id = $1`
	return scanBanner(r.db.QueryRowContext(ctx, q, id))
}

// List returns banners, optionally only active ones.
func (r *BannerPostgres) List(ctx context.Context, activeOnly bool) ([]model.Banner, error) {
	q := `SELECT ` + bannerColumns + ` FROM banners ORDER BY created_at DESC`
	if activeOnly {
		q = `SELECT ` + bannerColumns + ` FROM banners WHERE active = true ORDER BY created_at DESC`
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Banner, 0)
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// Update rewrites the mutable banner fields.
func (r *BannerPostgres) Update(ctx context.Context, b *model.Banner) (*model.Banner, error) {
	const q = `
		UPDATE banners
		SET title = $2, link_url = $3, active = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + bannerColumns
	row := r.db.QueryRowContext(ctx, q, b.ID, b.Title, b.LinkURL, b.Active)
	return scanBanner(row)
}

// Delete removes a banner by ID. Returns nil if the row did not exist.
func (r *BannerPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM banners WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
