package handlers

import (
	"github.com/gofiber/fiber/v2"

	"mandaladaka/internal/services"
)

type MenuHandler struct {
	Catalog *services.CatalogService
}

// GET /menu — the public card: visible products only, grouped by category
// client-side. Unavailable items stay listed so guests can see what exists.
func (h *MenuHandler) Menu(c *fiber.Ctx) error {
	products, err := h.Catalog.VisibleProducts()
	if err != nil {
		return fail(c, "menu.list", err)
	}
	views := make([]productView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(products[i]))
	}
	return c.JSON(views)
}
