package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"mandaladaka/internal/domain"
)

type orderRow struct {
	ID          int64  `db:"id"`
	TableNumber int64  `db:"table_number"`
	WaiterID    int64  `db:"waiter_id"`
	Status      string `db:"status"`
	CreatedAt   string `db:"created_at"`
}

func (r orderRow) toOrder() *domain.Order {
	return &domain.Order{
		ID:          r.ID,
		TableNumber: r.TableNumber,
		WaiterID:    r.WaiterID,
		Status:      domain.OrderStatus(r.Status),
		CreatedAt:   parseTime(r.CreatedAt),
	}
}

// itemRow is one order_items row joined with its product. The product columns
// reflect the catalog's current state; price_at_order stays the billing price
// captured when the order was saved.
type itemRow struct {
	OrderID             int64   `db:"order_id"`
	Quantity            int     `db:"quantity"`
	PriceAtOrder        float64 `db:"price_at_order"`
	ProductID           int64   `db:"product_id"`
	ProductName         string  `db:"product_name"`
	ProductPrice        float64 `db:"product_price"`
	ProductAvailability bool    `db:"product_availability"`
	ProductCategory     string  `db:"product_category"`
	ProductImageURL     string  `db:"product_image_url"`
	ProductVisibility   bool    `db:"product_visibility"`
}

func (r itemRow) toLine() *domain.ItemLine {
	return &domain.ItemLine{
		Product: domain.Product{
			ID:           r.ProductID,
			Name:         r.ProductName,
			Price:        r.ProductPrice,
			Availability: r.ProductAvailability,
			Category:     r.ProductCategory,
			ImageURL:     r.ProductImageURL,
			Visibility:   r.ProductVisibility,
		},
		Quantity:  r.Quantity,
		UnitPrice: r.PriceAtOrder,
	}
}

const itemJoin = `
	SELECT oi.order_id, oi.quantity, oi.price_at_order,
	       p.id AS product_id, p.name AS product_name, p.price AS product_price,
	       p.availability AS product_availability, p.category AS product_category,
	       p.image_url AS product_image_url, p.visibility AS product_visibility
	FROM order_items oi
	JOIN products p ON p.id = oi.product_id`

// loadItems fetches every item line for the given orders in one query and
// groups them by order id. Callers stitch the result onto their headers; one
// batched query regardless of how many orders are loaded.
func loadItems(db *sqlx.DB, orderIDs []int64) (map[int64][]*domain.ItemLine, error) {
	byOrder := make(map[int64][]*domain.ItemLine, len(orderIDs))
	if len(orderIDs) == 0 {
		return byOrder, nil
	}

	query, args, err := sqlx.In(itemJoin+` WHERE oi.order_id IN (?)`, orderIDs)
	if err != nil {
		return nil, err
	}
	var rows []itemRow
	if err := db.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	for _, r := range rows {
		byOrder[r.OrderID] = append(byOrder[r.OrderID], r.toLine())
	}
	return byOrder, nil
}

// parseTime accepts both our RFC3339 writes and sqlite's CURRENT_TIMESTAMP
// format.
func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	t, _ := time.Parse("2006-01-02 15:04:05", s)
	return t
}
