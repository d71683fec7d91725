package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"printo/internal/http/middleware"
	"printo/internal/model"
	"printo/internal/service"
)

// SellerHandler serves seller profile and verification routes.
type SellerHandler struct {
	sellers service.SellerService
}

// NewSellerHandler constructs a SellerHandler.
func NewSellerHandler(sellers service.SellerService) *SellerHandler {
	return &SellerHandler{sellers: sellers}
}

type sellerRequest struct {
	ParentID string `json:"parent_id,omitempty"`
	ShopName string `json:"shop_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	GSTIN    string `json:"gstin,omitempty"`
}

func (h *SellerHandler) Create(c *fiber.Ctx) error {
	var req sellerRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}
	if req.ShopName == "" {
		return writeError(c, fiber.StatusBadRequest, "MISSING_FIELDS", "shop_name is required")
	}

	s, err := h.sellers.CreateProfile(c.UserContext(), middleware.UserID(c), req.ParentID, req.ShopName, req.Phone, req.Address, req.GSTIN)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

func (h *SellerHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	s, err := h.sellers.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(s)
}

// Me returns the authenticated user's own seller profile.
func (h *SellerHandler) Me(c *fiber.Ctx) error {
	s, err := h.sellers.GetByUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(s)
}

func (h *SellerHandler) List(c *fiber.Ctx) error {
	limit, offset, err := pageParams(c)
	if err != nil {
		return err
	}
	res, err := h.sellers.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(res)
}

// Children lists the sellers nested under the given parent.
func (h *SellerHandler) Children(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	children, err := h.sellers.Children(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": children})
}

func (h *SellerHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	existing, err := h.sellers.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if middleware.UserRole(c) != model.RoleAdmin && existing.UserID != middleware.UserID(c) {
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "not the profile owner")
	}

	var req sellerRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}
	existing.ShopName = req.ShopName
	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.GSTIN = req.GSTIN

	s, err := h.sellers.Update(c.UserContext(), existing)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(s)
}

type verificationRequest struct {
	Status string `json:"status"`
}

// SetVerification is the admin route that moves a seller through the
// verification states.
func (h *SellerHandler) SetVerification(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	var req verificationRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}
	if !model.ValidVerification(req.Status) {
		return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "unknown verification status")
	}

	if err := h.sellers.SetVerification(c.UserContext(), id, req.Status); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "verification": req.Status})
}
