package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"printo/internal/model"
	"printo/internal/repository"
	"printo/internal/storage"
)

// ProductListResult is the service-level DTO for paginated products.
type ProductListResult struct {
	Items []model.Product `json:"data"`
	Total int             `json:"total"`
}

// ProductService defines the use cases for the product catalog.
type ProductService interface {
	// Create validates the category and the seller's verification status
	// before inserting.
	Create(ctx context.Context, p *model.Product) (*model.Product, error)

	Get(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, f repository.ProductFilter, limit, offset int) (*ProductListResult, error)
	Update(ctx context.Context, p *model.Product) (*model.Product, error)

	// Delete soft-deletes by clearing the active flag.
	Delete(ctx context.Context, id string) error

	// UploadImage uploads image content to object storage and records the key
	// on the product, rolling back storage if the record fails.
	UploadImage(ctx context.Context, productID string, r io.Reader, originalFilename, contentType string, size int64) (string, error)

	// ImageURL returns a presigned download URL for a stored image key.
	ImageURL(ctx context.Context, key string) (string, error)
}

type productService struct {
	products repository.ProductRepository
	sellers  repository.SellerRepository
	store    storage.Storage
}

// NewProductService constructs a new ProductService.
func NewProductService(products repository.ProductRepository, sellers repository.SellerRepository, store storage.Storage) ProductService {
	return &productService{products: products, sellers: sellers, store: store}
}

func (s *productService) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	if p.SellerID == "" || p.Name == "" {
		return nil, fmt.Errorf("seller id and name are required")
	}
	if !model.ValidCategory(p.Category) {
		return nil, ErrInvalidCategory
	}
	if p.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}
	if p.Stock < 0 {
		return nil, fmt.Errorf("stock must not be negative")
	}

	seller, err := s.sellers.FindByID(ctx, p.SellerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("seller %s not found", p.SellerID)
		}
		return nil, err
	}
	if !seller.Verified() {
		return nil, ErrSellerNotVerified
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.Price = p.Price.Round(2)
	p.Active = true
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.products.Create(ctx, p)
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) List(ctx context.Context, f repository.ProductFilter, limit, offset int) (*ProductListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	if f.Category != "" && !model.ValidCategory(f.Category) {
		return nil, ErrInvalidCategory
	}

	res, err := s.products.List(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *productService) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	if p.ID == "" {
		return nil, ErrIDRequired
	}
	if !model.ValidCategory(p.Category) {
		return nil, ErrInvalidCategory
	}
	if p.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}
	p.Price = p.Price.Round(2)

	updated, err := s.products.Update(ctx, p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.products.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *productService) UploadImage(ctx context.Context, productID string, r io.Reader, originalFilename, contentType string, size int64) (string, error) {
	if productID == "" {
		return "", ErrIDRequired
	}
	if r == nil {
		return "", fmt.Errorf("reader is nil")
	}

	if _, err := s.Get(ctx, productID); err != nil {
		return "", err
	}

	// Stored name is a UUID plus the original extension.
	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("products", productID, uuid.NewString()+ext))

	if _, err := s.store.Put(ctx, key, r, storage.PutOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": originalFilename},
	}); err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}

	if err := s.products.AddImageKey(ctx, productID, key); err != nil {
		// Rollback: remove the orphaned object.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return "", fmt.Errorf("record image failed: %v; rollback delete failed: %v", err, delErr)
		}
		return "", fmt.Errorf("record image failed: %w", err)
	}
	return key, nil
}

func (s *productService) ImageURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrIDRequired
	}
	return s.store.PresignGet(ctx, key, 15*time.Minute)
}
