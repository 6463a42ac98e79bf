package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"mandaladaka/internal/config"
	"mandaladaka/internal/domain"
	"mandaladaka/internal/http/handlers"
	applog "mandaladaka/internal/log"
	"mandaladaka/internal/repos"
	"mandaladaka/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo, []byte(cfg.JWTSecret),
		time.Duration(cfg.TokenTTLMinutes)*time.Minute)

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, authSvc)

	// Public
	app.Get("/", deps.DashboardHandler.Floor)
	app.Get("/menu", deps.MenuHandler.Menu)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Auth (login throttled)
	app.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)

	// Waiter
	waiter := app.Group("/waiter", handlers.RequireRole(authSvc, domain.RoleWaiter))
	waiter.Get("/tables", deps.WaiterHandler.ListTables)
	waiter.Get("/tables/:id", deps.WaiterHandler.TableDetails)
	waiter.Post("/tables/:id/open", deps.WaiterHandler.OpenTable)
	waiter.Post("/tables/:id/close", deps.WaiterHandler.CloseTable)
	waiter.Post("/orders", deps.WaiterHandler.CreateOrder)
	waiter.Post("/orders/:id/items", deps.WaiterHandler.AddItem)
	waiter.Delete("/orders/:id/items/:productID", deps.WaiterHandler.RemoveItem)
	waiter.Post("/orders/:id/cancel", deps.WaiterHandler.CancelOrder)

	// Kitchen
	kitchen := app.Group("/kitchen", handlers.RequireRole(authSvc, domain.RoleKitchen))
	kitchen.Get("/orders/pending", deps.KitchenHandler.PendingOrders)
	kitchen.Post("/orders/:id/start", deps.KitchenHandler.Start)
	kitchen.Post("/orders/:id/complete", deps.KitchenHandler.Complete)

	// Admin
	admin := app.Group("/admin", handlers.RequireRole(authSvc, domain.RoleAdmin))
	admin.Get("/products", deps.AdminHandler.ListProducts)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Patch("/products/:id", deps.AdminHandler.UpdateProduct)
	admin.Get("/users", deps.AdminHandler.ListUsers)
	admin.Post("/users", deps.AdminHandler.CreateUser)
	admin.Patch("/users/:id", deps.AdminHandler.UpdateUser)

	// 404
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
