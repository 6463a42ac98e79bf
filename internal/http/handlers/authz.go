package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"mandaladaka/internal/domain"
	applog "mandaladaka/internal/log"
	"mandaladaka/internal/services"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// authenticate resolves the bearer token into a user, or nil when the
// request carries no valid token.
func authenticate(c *fiber.Ctx, auth *services.AuthService) *domain.User {
	token := bearerToken(c)
	if token == "" {
		return nil
	}
	u, err := auth.UserFromToken(token)
	if err != nil {
		applog.Security(c, "auth.token.reject", nil)
		return nil
	}
	return u
}

// RequireAuth lets any authenticated staff member through and stashes the
// user in Locals for handlers and the logger.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := authenticate(c, auth)
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid bearer token"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireRole additionally enforces one staff role. Admins pass everywhere.
func RequireRole(auth *services.AuthService, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := authenticate(c, auth)
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid bearer token"})
		}
		if !u.HasRole(role) && !u.IsAdmin() {
			applog.Security(c, "access.denied."+role, map[string]any{"user_id": u.ID})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
