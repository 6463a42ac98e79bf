package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestAdminCatalogManagement(t *testing.T) {
	app := newTestApp(t)
	admin := login(t, app, "admin")

	// The back office sees the whole catalog, hidden items included.
	resp := doJSON(t, app, "GET", "/admin/products", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	decodeInto(t, resp, &products)
	require.Len(t, products, 6)

	resp = doJSON(t, app, "POST", "/admin/products", admin, fiber.Map{
		"name":         "Moqueca",
		"price":        55.00,
		"availability": true,
		"category":     "mains",
		"image_url":    "media/moqueca.jpg",
		"visibility":   true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID    int64   `json:"id"`
		Price float64 `json:"price"`
	}
	decodeInto(t, resp, &created)
	require.Equal(t, int64(7), created.ID)
	require.InDelta(t, 55.00, created.Price, 0.001)

	// Patch only the price; everything else stays.
	resp = doJSON(t, app, "PATCH", "/admin/products/7", admin, fiber.Map{"price": 59.00})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var patched struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	decodeInto(t, resp, &patched)
	require.Equal(t, "Moqueca", patched.Name)
	require.InDelta(t, 59.00, patched.Price, 0.001)

	// Patching a product that does not exist is a 404.
	resp = doJSON(t, app, "PATCH", "/admin/products/404", admin, fiber.Map{"price": 1.00})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// A non-positive price never reaches storage.
	resp = doJSON(t, app, "POST", "/admin/products", admin, fiber.Map{
		"name": "Free Lunch", "price": 0.0, "category": "mains",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminStaffManagement(t *testing.T) {
	app := newTestApp(t)
	admin := login(t, app, "admin")

	resp := doJSON(t, app, "POST", "/admin/users", admin, fiber.Map{
		"username": "pedro",
		"name":     "Pedro",
		"password": "S3gredo!forte",
		"roles":    "waiter",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	decodeInto(t, resp, &created)
	require.Equal(t, "pedro", created.Username)

	// The new account can log in and work the floor.
	resp = doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"username": "pedro", "password": "S3gredo!forte",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loggedIn struct {
		Token string `json:"token"`
	}
	decodeInto(t, resp, &loggedIn)

	resp = doJSON(t, app, "GET", "/waiter/tables", loggedIn.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Duplicate usernames are refused.
	resp = doJSON(t, app, "POST", "/admin/users", admin, fiber.Map{
		"username": "pedro", "name": "Impostor", "password": "Another1pass",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Demote to kitchen; the floor is now off limits.
	resp = doJSON(t, app, "PATCH", "/admin/users/4", admin, fiber.Map{"roles": "kitchen"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"username": "pedro", "password": "S3gredo!forte",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &loggedIn)

	resp = doJSON(t, app, "GET", "/waiter/tables", loggedIn.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
