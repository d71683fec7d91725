package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"printo/internal/http/middleware"
	"printo/internal/service"
)

// DashboardHandler serves the earnings summary routes.
type DashboardHandler struct {
	dashboard service.DashboardService
	sellers   service.SellerService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(dashboard service.DashboardService, sellers service.SellerService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, sellers: sellers}
}

// AdminEarnings returns the platform-wide earnings summary for a period.
func (h *DashboardHandler) AdminEarnings(c *fiber.Ctx) error {
	from, to, err := periodParams(c)
	if err != nil {
		return err
	}
	e, err := h.dashboard.AdminEarnings(c.UserContext(), from, to)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(e)
}

// SellerEarnings returns the authenticated seller's earnings summary.
func (h *DashboardHandler) SellerEarnings(c *fiber.Ctx) error {
	from, to, err := periodParams(c)
	if err != nil {
		return err
	}
	seller, err := h.sellers.GetByUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	e, err := h.dashboard.SellerEarnings(c.UserContext(), seller.ID, from, to)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(e)
}

// periodParams parses optional RFC 3339 from/to query params. Zero values let
// the service apply its default window.
func periodParams(c *fiber.Ctx) (from, to time.Time, err error) {
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, writeError(c, fiber.StatusBadRequest, "INVALID_FROM", "from must be RFC 3339")
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, writeError(c, fiber.StatusBadRequest, "INVALID_TO", "to must be RFC 3339")
		}
	}
	return from, to, nil
}
