package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "mandaladaka/internal/log"
	"mandaladaka/internal/services"
	"mandaladaka/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad json"})
	}
	username, ok := validate.Username(req.Username)
	if !ok || !validate.Password(req.Password) {
		applog.Security(c, "auth.login.fail", map[string]any{"username": req.Username, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}

	token, u, err := h.Auth.Login(username, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"username": username})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"username": username})
	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       u.ID,
			"username": u.Username,
			"name":     u.Name,
			"roles":    u.Roles,
		},
	})
}
