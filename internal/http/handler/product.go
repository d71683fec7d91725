package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"printo/internal/http/middleware"
	"printo/internal/model"
	"printo/internal/repository"
	"printo/internal/service"
)

// ProductHandler serves the product catalog routes.
type ProductHandler struct {
	products service.ProductService
	sellers  service.SellerService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products service.ProductService, sellers service.SellerService) *ProductHandler {
	return &ProductHandler{products: products, sellers: sellers}
}

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Variants    []model.Variant `json:"variants"`
}

// sellerForUser resolves the seller profile of the authenticated user.
func (h *ProductHandler) sellerForUser(c *fiber.Ctx) (*model.Seller, error) {
	return h.sellers.GetByUser(c.UserContext(), middleware.UserID(c))
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}

	seller, err := h.sellerForUser(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	p, err := h.products.Create(c.UserContext(), &model.Product{
		SellerID:    seller.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Variants:    req.Variants,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	p, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit, offset, err := pageParams(c)
	if err != nil {
		return err
	}

	f := repository.ProductFilter{
		Category:   c.Query("category"),
		SellerID:   c.Query("seller_id"),
		ActiveOnly: c.Query("active", "true") == "true",
	}

	res, err := h.products.List(c.UserContext(), f, limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(res)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	existing, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.requireOwnership(c, existing.SellerID); err != nil {
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Category = req.Category
	existing.Price = req.Price
	existing.Stock = req.Stock
	existing.Variants = req.Variants

	p, err := h.products.Update(c.UserContext(), existing)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	existing, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.requireOwnership(c, existing.SellerID); err != nil {
		return err
	}

	if err := h.products.Delete(c.UserContext(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImage accepts multipart/form-data with field name "image".
func (h *ProductHandler) UploadImage(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	existing, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.requireOwnership(c, existing.SellerID); err != nil {
		return err
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "image file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	defer f.Close()

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}

	key, err := h.products.UploadImage(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"key": key})
}

// Images returns presigned download URLs for the product's stored images.
func (h *ProductHandler) Images(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	p, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}

	urls := make([]string, 0, len(p.ImageKeys))
	for _, key := range p.ImageKeys {
		u, err := h.products.ImageURL(c.UserContext(), key)
		if err != nil {
			return writeServiceError(c, err)
		}
		urls = append(urls, u)
	}
	return c.JSON(fiber.Map{"urls": urls})
}

// requireOwnership rejects sellers touching products they do not own. Admins
// pass through.
func (h *ProductHandler) requireOwnership(c *fiber.Ctx, ownerSellerID string) error {
	if middleware.UserRole(c) == model.RoleAdmin {
		return nil
	}
	seller, err := h.sellerForUser(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	if seller.ID != ownerSellerID {
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "not the product owner")
	}
	return nil
}

// pageParams parses limit and offset query params with defaults.
func pageParams(c *fiber.Ctx) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, nil
}
