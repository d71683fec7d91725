package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"printo/internal/http/middleware"
	"printo/internal/model"
	"printo/internal/service"
)

// IdempotencyKeyHeader carries the client's order deduplication key.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler serves the order lifecycle routes.
type OrderHandler struct {
	orders  service.OrderService
	sellers service.SellerService
	auth    service.AuthService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orders service.OrderService, sellers service.SellerService, auth service.AuthService) *OrderHandler {
	return &OrderHandler{orders: orders, sellers: sellers, auth: auth}
}

type createOrderRequest struct {
	Items           []service.OrderItemRequest `json:"items"`
	ShippingAddress string                     `json:"shipping_address"`
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}

	userID := middleware.UserID(c)
	email := ""
	if u, err := h.auth.Profile(c.UserContext(), userID); err == nil {
		email = u.Email
	}

	order, err := h.orders.Create(c.UserContext(), &service.CreateOrderRequest{
		UserID:          userID,
		UserEmail:       email,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		IdempotencyKey:  c.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	order, err := h.orders.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if middleware.UserRole(c) != model.RoleAdmin && order.UserID != middleware.UserID(c) {
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "not the order owner")
	}
	return c.JSON(order)
}

// List returns the authenticated user's own orders.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	limit, offset, err := pageParams(c)
	if err != nil {
		return err
	}
	res, err := h.orders.ListByUser(c.UserContext(), middleware.UserID(c), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(res)
}

// SellerOrders returns orders containing lines for the authenticated seller.
func (h *OrderHandler) SellerOrders(c *fiber.Ctx) error {
	limit, offset, err := pageParams(c)
	if err != nil {
		return err
	}
	seller, err := h.sellers.GetByUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	res, err := h.orders.ListBySeller(c.UserContext(), seller.ID, limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(res)
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus advances the order status. Sellers may only touch orders
// carrying at least one of their own lines.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	var req orderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}

	if middleware.UserRole(c) != model.RoleAdmin {
		existing, err := h.orders.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		seller, err := h.sellers.GetByUser(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		if !orderHasSellerLine(existing, seller.ID) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "order has no lines for this seller")
		}
	}

	order, err := h.orders.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(order)
}

func orderHasSellerLine(o *model.Order, sellerID string) bool {
	for _, item := range o.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	existing, err := h.orders.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if middleware.UserRole(c) != model.RoleAdmin && existing.UserID != middleware.UserID(c) {
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "not the order owner")
	}

	order, err := h.orders.Cancel(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(order)
}
