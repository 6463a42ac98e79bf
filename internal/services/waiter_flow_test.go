package services_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"mandaladaka/internal/domain"
	"mandaladaka/internal/repos"
	"mandaladaka/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newServices(db *sqlx.DB) (*services.WaiterService, *services.KitchenService) {
	tableRepo := repos.NewTableRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	prodRepo := repos.NewProductRepo(db)
	return services.NewWaiterService(tableRepo, orderRepo, prodRepo), services.NewKitchenService(orderRepo)
}

func TestWaiterFlow_OpenOrderPrepareClose(t *testing.T) {
	db := memdb(t)
	waiter, kitchen := newServices(db)

	tbl, err := waiter.OpenTable(1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Status != domain.TableOccupied || tbl.NumberOfPeople != 4 {
		t.Fatalf("open failed: %+v", tbl)
	}

	// Feijoada (id 1, 42.00) and two Guarana (id 5, 8.00) from the seed menu.
	order, err := waiter.CreateOrder(1, 2, []services.OrderItemInput{
		{ProductID: 1, Quantity: 1},
		{ProductID: 5, Quantity: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if order.ID == 0 {
		t.Fatal("order id not assigned")
	}
	if total := order.TotalPrice(); total != 58 {
		t.Fatalf("want total 58, got %v", total)
	}

	pending, err := kitchen.ListPendingOrders()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != order.ID {
		t.Fatalf("kitchen queue wrong: %+v", pending)
	}

	if _, err := kitchen.StartPreparation(order.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := kitchen.CompletePreparation(order.ID); err != nil {
		t.Fatal(err)
	}

	closed, completed, err := waiter.CloseTable(1)
	if err != nil {
		t.Fatal(err)
	}
	if closed.Status != domain.TableAvailable || closed.NumberOfPeople != 0 {
		t.Fatalf("close did not free the table: %+v", closed)
	}
	if len(completed) != 1 || completed[0].ID != order.ID {
		t.Fatalf("completed orders wrong: %+v", completed)
	}

	// The order survives in storage after the session ends.
	archived, err := repos.NewOrderRepo(db).FindByID(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if archived == nil || archived.Status != domain.OrderCompleted {
		t.Fatal("closed session dropped the order from storage")
	}
}

func TestCloseTable_ArchivesTheSession(t *testing.T) {
	db := memdb(t)
	waiter, kitchen := newServices(db)

	if _, err := waiter.OpenTable(6, 2); err != nil {
		t.Fatal(err)
	}
	order, err := waiter.CreateOrder(6, 1, []services.OrderItemInput{{ProductID: 3, Quantity: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := kitchen.StartPreparation(order.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := kitchen.CompletePreparation(order.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := waiter.CloseTable(6); err != nil {
		t.Fatal(err)
	}

	// A new party at the same table starts with a clean graph and an
	// untainted bill.
	reopened, err := waiter.OpenTable(6, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(reopened.Orders) != 0 {
		t.Fatalf("previous session leaked into the new one: %+v", reopened.Orders)
	}
	details, err := waiter.TableDetails(6)
	if err != nil {
		t.Fatal(err)
	}
	if len(details.Orders) != 0 || details.TotalBill() != 0 {
		t.Fatalf("archived orders still load with the table: %+v", details.Orders)
	}
}

func TestCloseTable_ListsEveryBlocker(t *testing.T) {
	db := memdb(t)
	waiter, kitchen := newServices(db)

	if _, err := waiter.OpenTable(2, 2); err != nil {
		t.Fatal(err)
	}
	first, err := waiter.CreateOrder(2, 1, []services.OrderItemInput{{ProductID: 1, Quantity: 1}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := waiter.CreateOrder(2, 1, []services.OrderItemInput{{ProductID: 4, Quantity: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := kitchen.StartPreparation(second.ID); err != nil {
		t.Fatal(err)
	}

	_, _, err = waiter.CloseTable(2)
	var bre *domain.BusinessRuleError
	if !errors.As(err, &bre) {
		t.Fatalf("want BusinessRuleError, got %v", err)
	}
	for _, o := range []*domain.Order{first, second} {
		if !strings.Contains(bre.Message, strconv.FormatInt(o.ID, 10)) {
			t.Fatalf("blocker %d missing from %q", o.ID, bre.Message)
		}
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	db := memdb(t)
	waiter, _ := newServices(db)

	if _, err := waiter.OpenTable(3, 2); err != nil {
		t.Fatal(err)
	}

	var bre *domain.BusinessRuleError
	_, err := waiter.CreateOrder(3, 1, nil)
	if !errors.As(err, &bre) {
		t.Fatalf("empty order: want BusinessRuleError, got %v", err)
	}

	var nfe *domain.NotFoundError
	_, err = waiter.CreateOrder(3, 1, []services.OrderItemInput{{ProductID: 999, Quantity: 1}})
	if !errors.As(err, &nfe) {
		t.Fatalf("unknown product: want NotFoundError, got %v", err)
	}

	_, err = waiter.CreateOrder(99, 1, []services.OrderItemInput{{ProductID: 1, Quantity: 1}})
	if !errors.As(err, &nfe) || nfe.Kind != "table" {
		t.Fatalf("unknown table: want table NotFoundError, got %v", err)
	}

	// Orders cannot be placed on a free table.
	_, err = waiter.CreateOrder(4, 1, []services.OrderItemInput{{ProductID: 1, Quantity: 1}})
	if !errors.As(err, &bre) {
		t.Fatalf("free table: want BusinessRuleError, got %v", err)
	}
}

func TestAddItemToOrder_MergesLines(t *testing.T) {
	db := memdb(t)
	waiter, _ := newServices(db)

	if _, err := waiter.OpenTable(5, 2); err != nil {
		t.Fatal(err)
	}
	order, err := waiter.CreateOrder(5, 1, []services.OrderItemInput{{ProductID: 5, Quantity: 1}})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := waiter.AddItemToOrder(order.ID, 5, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Items) != 1 || updated.Items[0].Quantity != 4 {
		t.Fatalf("want one merged line with qty 4, got %+v", updated.Items)
	}
}
