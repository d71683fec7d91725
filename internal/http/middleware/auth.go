package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"printo/internal/service"
)

const (
	// UserIDLocalKey is the locals key the authenticated user's id is stored under.
	UserIDLocalKey = "user_id"
	// UserRoleLocalKey is the locals key the authenticated user's role is stored under.
	UserRoleLocalKey = "user_role"
)

// RequireAuth validates the Bearer token and stores the subject and role in
// context locals for downstream handlers.
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(UserIDLocalKey, claims.Subject)
		c.Locals(UserRoleLocalKey, claims.Role)

		return c.Next()
	}
}

// RequireRole allows the request through only when the authenticated role is
// one of the given roles. It runs after RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(UserRoleLocalKey).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
}

// UserID returns the authenticated user's id from context locals.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDLocalKey).(string)
	return id
}

// UserRole returns the authenticated user's role from context locals.
func UserRole(c *fiber.Ctx) string {
	role, _ := c.Locals(UserRoleLocalKey).(string)
	return role
}
