package handlers

import (
	"github.com/gofiber/fiber/v2"

	"mandaladaka/internal/domain"
	applog "mandaladaka/internal/log"
	"mandaladaka/internal/services"
	"mandaladaka/internal/validate"
)

type WaiterHandler struct {
	Waiter *services.WaiterService
}

// GET /waiter/tables
func (h *WaiterHandler) ListTables(c *fiber.Ctx) error {
	tables, err := h.Waiter.ListTables()
	if err != nil {
		return fail(c, "waiter.tables.list", err)
	}
	out := make([]tableView, 0, len(tables))
	for _, t := range tables {
		out = append(out, toTableView(t))
	}
	return c.JSON(out)
}

// GET /waiter/tables/:id
func (h *WaiterHandler) TableDetails(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid table id"})
	}
	t, err := h.Waiter.TableDetails(id)
	if err != nil {
		return fail(c, "waiter.tables.get", err)
	}
	return c.JSON(toTableView(t))
}

type openTableRequest struct {
	NumberOfPeople int `json:"number_of_people"`
}

// POST /waiter/tables/:id/open
func (h *WaiterHandler) OpenTable(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid table id"})
	}
	var req openTableRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad json"})
	}
	if !validate.People(req.NumberOfPeople) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "number_of_people must be between 1 and 30"})
	}

	t, err := h.Waiter.OpenTable(id, req.NumberOfPeople)
	if err != nil {
		return fail(c, "waiter.tables.open", err)
	}
	applog.Audit(c, "table.open", map[string]any{"table_id": id, "people": req.NumberOfPeople})
	return c.JSON(toTableView(t))
}

// POST /waiter/tables/:id/close
func (h *WaiterHandler) CloseTable(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid table id"})
	}
	t, completed, err := h.Waiter.CloseTable(id)
	if err != nil {
		return fail(c, "waiter.tables.close", err)
	}
	applog.Audit(c, "table.close", map[string]any{"table_id": id, "completed_orders": len(completed)})
	return c.JSON(fiber.Map{
		"table":            toTableView(t),
		"completed_orders": toOrderViews(completed),
	})
}

type createOrderRequest struct {
	TableID int64                     `json:"table_id"`
	Items   []services.OrderItemInput `json:"items"`
}

// POST /waiter/orders
func (h *WaiterHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad json"})
	}
	if req.TableID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid table_id"})
	}
	for i, in := range req.Items {
		qty, ok := validate.Qty(in.Quantity)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "item quantity must be positive"})
		}
		req.Items[i].Quantity = qty
	}

	u, _ := c.Locals("user").(*domain.User)
	order, err := h.Waiter.CreateOrder(req.TableID, u.ID, req.Items)
	if err != nil {
		return fail(c, "waiter.orders.create", err)
	}
	applog.Audit(c, "order.create", map[string]any{"order_id": order.ID, "table_id": req.TableID, "total": order.TotalPrice()})
	return c.Status(fiber.StatusCreated).JSON(toOrderView(order))
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// POST /waiter/orders/:id/items
func (h *WaiterHandler) AddItem(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad json"})
	}
	qty, ok := validate.Qty(req.Quantity)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantity must be positive"})
	}

	order, err := h.Waiter.AddItemToOrder(id, req.ProductID, qty)
	if err != nil {
		return fail(c, "waiter.orders.add_item", err)
	}
	applog.Audit(c, "order.add_item", map[string]any{"order_id": id, "product_id": req.ProductID, "qty": qty})
	return c.JSON(toOrderView(order))
}

// DELETE /waiter/orders/:id/items/:productID
func (h *WaiterHandler) RemoveItem(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	productID, ok := validate.ID(c.Params("productID"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	order, err := h.Waiter.RemoveItemFromOrder(id, productID)
	if err != nil {
		return fail(c, "waiter.orders.remove_item", err)
	}
	applog.Audit(c, "order.remove_item", map[string]any{"order_id": id, "product_id": productID})
	return c.JSON(toOrderView(order))
}

// POST /waiter/orders/:id/cancel
func (h *WaiterHandler) CancelOrder(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	order, err := h.Waiter.CancelOrder(id)
	if err != nil {
		return fail(c, "waiter.orders.cancel", err)
	}
	applog.Audit(c, "order.cancel", map[string]any{"order_id": id})
	return c.JSON(toOrderView(order))
}
