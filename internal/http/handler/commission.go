package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"printo/internal/service"
)

// CommissionHandler serves the admin commission rate routes.
type CommissionHandler struct {
	commissions service.CommissionService
}

// NewCommissionHandler constructs a CommissionHandler.
func NewCommissionHandler(commissions service.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissions: commissions}
}

type commissionRequest struct {
	Category string          `json:"category"`
	Percent  decimal.Decimal `json:"percent"`
}

func (h *CommissionHandler) Set(c *fiber.Ctx) error {
	var req commissionRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}

	cc, err := h.commissions.Set(c.UserContext(), req.Category, req.Percent)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cc)
}

func (h *CommissionHandler) Get(c *fiber.Ctx) error {
	cc, err := h.commissions.Get(c.UserContext(), c.Params("category"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(cc)
}

func (h *CommissionHandler) List(c *fiber.Ctx) error {
	list, err := h.commissions.List(c.UserContext())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *CommissionHandler) Delete(c *fiber.Ctx) error {
	if err := h.commissions.Delete(c.UserContext(), c.Params("category")); err != nil {
		return writeServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
