package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"mandaladaka/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type itemInsert struct {
	OrderID      int64   `db:"order_id"`
	ProductID    int64   `db:"product_id"`
	Quantity     int     `db:"quantity"`
	PriceAtOrder float64 `db:"price_at_order"`
}

// Save writes the order header and its full item set in one transaction.
// A fresh order (id 0) gets its generated id assigned back onto the
// aggregate. Items use a replace-all strategy: every stored row for the order
// is deleted and the current in-memory set reinserted, so no orphaned item
// row can survive a save. Each item row carries the price the line bills at,
// keeping historical orders billable after catalog price changes.
//
// Not safe for concurrent calls on the same order id: there is no version
// column or row lock, so two read-modify-save cycles race last-writer-wins.
func (r *OrderRepo) Save(o *domain.Order) (*domain.Order, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, &domain.PersistenceError{OrderID: o.ID, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if o.ID == 0 {
		res, err := tx.Exec(`
			INSERT INTO orders(table_number, waiter_id, status, created_at)
			VALUES(?,?,?,?)
		`, o.TableNumber, o.WaiterID, string(o.Status), o.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return nil, &domain.PersistenceError{OrderID: o.ID, Err: err}
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, &domain.PersistenceError{OrderID: o.ID, Err: err}
		}
		o.ID = id
	} else {
		if _, err := tx.Exec(`
			UPDATE orders SET table_number=?, status=? WHERE id=?
		`, o.TableNumber, string(o.Status), o.ID); err != nil {
			return nil, &domain.PersistenceError{OrderID: o.ID, Err: err}
		}
	}

	if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id=?`, o.ID); err != nil {
		return nil, &domain.PersistenceError{OrderID: o.ID, Err: err}
	}

	if len(o.Items) > 0 {
		rows := make([]itemInsert, 0, len(o.Items))
		for _, it := range o.Items {
			rows = append(rows, itemInsert{
				OrderID:      o.ID,
				ProductID:    it.Product.ID,
				Quantity:     it.Quantity,
				PriceAtOrder: it.UnitPrice,
			})
		}
		if _, err := tx.NamedExec(`
			INSERT INTO order_items(order_id, product_id, quantity, price_at_order)
			VALUES(:order_id, :product_id, :quantity, :price_at_order)
		`, rows); err != nil {
			return nil, &domain.PersistenceError{OrderID: o.ID, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, &domain.PersistenceError{OrderID: o.ID, Err: err}
	}
	return o, nil
}

// FindByID loads one order with its item lines and their product snapshots.
// Absence is a result, not a fault: (nil, nil) when no such order exists.
func (r *OrderRepo) FindByID(orderID int64) (*domain.Order, error) {
	var row orderRow
	err := r.db.Get(&row, `
		SELECT id, table_number, waiter_id, status, created_at
		FROM orders WHERE id=?
	`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	o := row.toOrder()
	items, err := loadItems(r.db, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// FindByStatus loads every order with the given status. Headers come from one
// query and all item lines from a single batched join, stitched back by order
// id; no per-order item query is ever issued.
func (r *OrderRepo) FindByStatus(status domain.OrderStatus) ([]*domain.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, `
		SELECT id, table_number, waiter_id, status, created_at
		FROM orders WHERE status=? ORDER BY id
	`, string(status)); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	orders := make([]*domain.Order, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	byID := make(map[int64]*domain.Order, len(rows))
	for _, row := range rows {
		o := row.toOrder()
		orders = append(orders, o)
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	items, err := loadItems(r.db, ids)
	if err != nil {
		return nil, err
	}
	for id, lines := range items {
		byID[id].Items = lines
	}
	return orders, nil
}

// ArchiveByTable moves every live order of a table into history. Called when
// the session closes; the rows stay queryable by id but stop loading with
// the table.
func (r *OrderRepo) ArchiveByTable(tableNumber int64) error {
	if _, err := r.db.Exec(`
		UPDATE orders SET archived=1 WHERE table_number=? AND archived=0
	`, tableNumber); err != nil {
		return &domain.PersistenceError{Err: err}
	}
	return nil
}
