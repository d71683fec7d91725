package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"printo/internal/http/middleware"
	"printo/internal/service"
)

// NotificationHandler serves the in-app notification routes.
type NotificationHandler struct {
	notifications service.NotificationService
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	limit, offset, err := pageParams(c)
	if err != nil {
		return err
	}
	res, err := h.notifications.List(c.UserContext(), middleware.UserID(c), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(res)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	if err := h.notifications.MarkRead(c.UserContext(), id, middleware.UserID(c)); err != nil {
		return writeServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notifications.UnreadCount(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"unread": count})
}
