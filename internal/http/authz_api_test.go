package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/waiter/tables", "/kitchen/orders/pending", "/admin/products"} {
		resp := doJSON(t, app, "GET", path, "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
		resp.Body.Close()
	}

	// A garbage token is the same as no token.
	resp := doJSON(t, app, "GET", "/waiter/tables", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRolesPartitionTheAPI(t *testing.T) {
	app := newTestApp(t)
	waiter := login(t, app, "joao")
	cook := login(t, app, "maria")
	admin := login(t, app, "admin")

	// The cook cannot seat guests; the waiter cannot manage the catalog.
	resp := doJSON(t, app, "POST", "/waiter/tables/1/open", cook, fiber.Map{"number_of_people": 2})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/admin/products", waiter, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/kitchen/orders/pending", waiter, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admins pass every gate.
	for _, path := range []string{"/waiter/tables", "/kitchen/orders/pending", "/admin/users"} {
		resp := doJSON(t, app, "GET", path, admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, "path %s", path)
		resp.Body.Close()
	}
}

func TestDomainErrorsMapToStatuses(t *testing.T) {
	app := newTestApp(t)
	waiter := login(t, app, "joao")

	// Zero guests is a bad request.
	resp := doJSON(t, app, "POST", "/waiter/tables/1/open", waiter, fiber.Map{"number_of_people": 0})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unknown table is a 404.
	resp = doJSON(t, app, "GET", "/waiter/tables/99", waiter, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Seating an already occupied table is a conflict.
	resp = doJSON(t, app, "POST", "/waiter/tables/1/open", waiter, fiber.Map{"number_of_people": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, app, "POST", "/waiter/tables/1/open", waiter, fiber.Map{"number_of_people": 3})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Ordering on a free table is a conflict too.
	resp = doJSON(t, app, "POST", "/waiter/orders", waiter, fiber.Map{
		"table_id": 2,
		"items":    []fiber.Map{{"product_id": 1, "quantity": 1}},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// An unknown product in an order is a 404.
	resp = doJSON(t, app, "POST", "/waiter/orders", waiter, fiber.Map{
		"table_id": 1,
		"items":    []fiber.Map{{"product_id": 999, "quantity": 1}},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Closing with a pending order names the blocker and conflicts.
	resp = doJSON(t, app, "POST", "/waiter/orders", waiter, fiber.Map{
		"table_id": 1,
		"items":    []fiber.Map{{"product_id": 5, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, app, "POST", "/waiter/tables/1/close", waiter, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var conflict struct {
		Error string `json:"error"`
	}
	decodeInto(t, resp, &conflict)
	require.Contains(t, conflict.Error, "1")
}
