package handler

import (
	"github.com/gofiber/fiber/v2"

	"printo/internal/http/middleware"
	"printo/internal/service"
)

// AuthHandler serves registration, login, and profile routes.
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return writeError(c, fiber.StatusBadRequest, "MISSING_FIELDS", "name, email and password are required")
	}

	u, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}
	if req.Email == "" || req.Password == "" {
		return writeError(c, fiber.StatusBadRequest, "MISSING_FIELDS", "email and password are required")
	}

	token, u, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"token": token, "user": u})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	u, err := h.auth.Profile(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(u)
}
