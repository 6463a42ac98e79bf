package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"mandaladaka/internal/domain"
	applog "mandaladaka/internal/log"
	"mandaladaka/internal/services"
)

// fail maps a domain error to its transport status: validation is a bad
// request, state violations are conflicts, absence is 404 and anything else
// is a server fault. The taxonomy stays intact across the wire so clients
// can tell "fix your input" from "someone beat you to it".
func fail(c *fiber.Ctx, action string, err error) error {
	var (
		ve  *domain.ValidationError
		bre *domain.BusinessRuleError
		ite *domain.InvalidTransitionError
		nfe *domain.NotFoundError
		pe  *domain.PersistenceError
	)
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Message})
	case errors.As(err, &bre):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": bre.Message})
	case errors.As(err, &ite):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ite.Error()})
	case errors.As(err, &nfe):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nfe.Error()})
	case errors.As(err, &pe):
		applog.Error(c, action, err, map[string]any{"order_id": pe.OrderID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save order; please retry"})
	case errors.Is(err, services.ErrBadCreds), errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
