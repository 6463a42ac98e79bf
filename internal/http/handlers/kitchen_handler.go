package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "mandaladaka/internal/log"
	"mandaladaka/internal/services"
	"mandaladaka/internal/validate"
)

type KitchenHandler struct {
	Kitchen *services.KitchenService
}

// GET /kitchen/orders/pending
func (h *KitchenHandler) PendingOrders(c *fiber.Ctx) error {
	orders, err := h.Kitchen.ListPendingOrders()
	if err != nil {
		return fail(c, "kitchen.orders.pending", err)
	}
	return c.JSON(toOrderViews(orders))
}

// POST /kitchen/orders/:id/start
func (h *KitchenHandler) Start(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	order, err := h.Kitchen.StartPreparation(id)
	if err != nil {
		return fail(c, "kitchen.orders.start", err)
	}
	applog.Audit(c, "order.start_preparation", map[string]any{"order_id": id})
	return c.JSON(toOrderView(order))
}

// POST /kitchen/orders/:id/complete
func (h *KitchenHandler) Complete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	order, err := h.Kitchen.CompletePreparation(id)
	if err != nil {
		return fail(c, "kitchen.orders.complete", err)
	}
	applog.Audit(c, "order.complete_preparation", map[string]any{"order_id": id})
	return c.JSON(toOrderView(order))
}
