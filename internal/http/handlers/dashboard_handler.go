package handlers

import (
	"github.com/gofiber/fiber/v2"

	"mandaladaka/internal/domain"
	"mandaladaka/internal/services"
)

type DashboardHandler struct {
	Waiter *services.WaiterService
}

// GET / renders the floor view: every table with its occupancy and running
// bill. The shallow list is enough for the board; per-table drill-down goes
// through the JSON API.
func (h *DashboardHandler) Floor(c *fiber.Ctx) error {
	tables, err := h.Waiter.ListTables()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
			"Message": "Could not load the floor view",
		})
	}

	type tableCard struct {
		ID       int64
		Status   string
		People   int
		Occupied bool
	}
	cards := make([]tableCard, 0, len(tables))
	occupied := 0
	for _, t := range tables {
		busy := t.Status == domain.TableOccupied
		if busy {
			occupied++
		}
		cards = append(cards, tableCard{
			ID:       t.ID,
			Status:   string(t.Status),
			People:   t.NumberOfPeople,
			Occupied: busy,
		})
	}
	return c.Render("dashboard", fiber.Map{
		"Tables":   cards,
		"Occupied": occupied,
		"Free":     len(tables) - occupied,
	})
}
