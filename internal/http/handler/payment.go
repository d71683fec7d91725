package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"printo/internal/http/middleware"
	"printo/internal/model"
	"printo/internal/service"
)

// PaymentHandler serves the gateway checkout routes.
type PaymentHandler struct {
	payments service.PaymentService
	orders   service.OrderService
	auth     service.AuthService
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(payments service.PaymentService, orders service.OrderService, auth service.AuthService) *PaymentHandler {
	return &PaymentHandler{payments: payments, orders: orders, auth: auth}
}

type createPaymentRequest struct {
	OrderID string `json:"order_id"`
}

// Create registers the order with the gateway and returns the pending
// payment carrying the gateway order id the client checkout needs. Only the
// order owner (or an admin) may open a checkout.
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}
	if _, err := uuid.Parse(req.OrderID); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid order id")
	}

	order, err := h.orders.Get(c.UserContext(), req.OrderID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if middleware.UserRole(c) != model.RoleAdmin && order.UserID != middleware.UserID(c) {
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "not the order owner")
	}

	p, err := h.payments.CreateGatewayOrder(c.UserContext(), req.OrderID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

type verifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
}

// Verify checks the signature the client posts back after checkout and
// captures the payment.
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	var req verifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}

	email := ""
	if u, err := h.auth.Profile(c.UserContext(), middleware.UserID(c)); err == nil {
		email = u.Email
	}

	p, err := h.payments.VerifyAndCapture(c.UserContext(), &service.VerifyPaymentRequest{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
		UserEmail:        email,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(p)
}
