package handlers

import (
	"github.com/gofiber/fiber/v2"

	"mandaladaka/internal/domain"
	applog "mandaladaka/internal/log"
	"mandaladaka/internal/services"
	"mandaladaka/internal/validate"
)

type AdminHandler struct {
	Catalog *services.CatalogService
	Staff   *services.StaffService
}

type productRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Availability bool    `json:"availability"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"image_url"`
	Visibility   bool    `json:"visibility"`
}

type productPatchRequest struct {
	Name         *string  `json:"name"`
	Price        *float64 `json:"price"`
	Availability *bool    `json:"availability"`
	Category     *string  `json:"category"`
	ImageURL     *string  `json:"image_url"`
	Visibility   *bool    `json:"visibility"`
}

// GET /admin/products
func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.Catalog.AllProducts()
	if err != nil {
		return fail(c, "admin.products.list", err)
	}
	views := make([]productView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(products[i]))
	}
	return c.JSON(views)
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	p, err := h.Catalog.CreateProduct(domain.Product{
		Name:         req.Name,
		Price:        req.Price,
		Availability: req.Availability,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Visibility:   req.Visibility,
	})
	if err != nil {
		return fail(c, "admin.products.create", err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(toProductView(*p))
}

// PATCH /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	var req productPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	p, err := h.Catalog.UpdateProduct(id, domain.ProductPatch{
		Name:         req.Name,
		Price:        req.Price,
		Availability: req.Availability,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Visibility:   req.Visibility,
	})
	if err != nil {
		return fail(c, "admin.products.update", err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": p.ID})
	return c.JSON(toProductView(*p))
}

type userView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Roles    string `json:"roles"`
}

func toUserView(u *domain.User) userView {
	return userView{ID: u.ID, Username: u.Username, Name: u.Name, Roles: u.Roles}
}

type createUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Roles    string `json:"roles"`
}

type userPatchRequest struct {
	Username *string `json:"username"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Roles    *string `json:"roles"`
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Staff.ListUsers()
	if err != nil {
		return fail(c, "admin.users.list", err)
	}
	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	return c.JSON(views)
}

// POST /admin/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	username, ok := validate.Username(req.Username)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid username"})
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}
	if !validate.Password(req.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password must be 8-64 chars with letters and digits"})
	}
	roles := req.Roles
	if roles != "" {
		if roles, ok = validate.Roles(roles); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "roles must be a comma-separated list of admin, waiter, kitchen"})
		}
	}
	u, err := h.Staff.CreateUser(username, name, req.Password, roles)
	if err != nil {
		return fail(c, "admin.users.create", err)
	}
	applog.Audit(c, "user.create", map[string]any{"created_id": u.ID, "username": u.Username})
	return c.Status(fiber.StatusCreated).JSON(toUserView(u))
}

// PATCH /admin/users/:id
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	var req userPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	if req.Roles != nil {
		roles, ok := validate.Roles(*req.Roles)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "roles must be a comma-separated list of admin, waiter, kitchen"})
		}
		req.Roles = &roles
	}
	u, err := h.Staff.UpdateUser(id, domain.UserPatch{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		return fail(c, "admin.users.update", err)
	}
	applog.Audit(c, "user.update", map[string]any{"updated_id": u.ID})
	return c.JSON(toUserView(u))
}
