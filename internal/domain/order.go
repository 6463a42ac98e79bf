package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// Order is the aggregate root for a table's single round of items. ID 0 means
// the order has not been persisted yet.
type Order struct {
	ID          int64
	TableNumber int64
	WaiterID    int64
	Items       []*ItemLine
	Status      OrderStatus
	CreatedAt   time.Time
}

// NewOrder builds an empty pending order for a table.
func NewOrder(tableNumber, waiterID int64) *Order {
	return &Order{
		TableNumber: tableNumber,
		WaiterID:    waiterID,
		Status:      OrderPending,
		CreatedAt:   time.Now(),
	}
}

func (o *Order) finalized() bool {
	return o.Status == OrderCompleted || o.Status == OrderCancelled
}

// TotalPrice sums the line subtotals. Recomputed on every call; item counts
// are small.
func (o *Order) TotalPrice() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Total()
	}
	return total
}

// AddItem merges quantity into the existing line for the product, or appends
// a new line billed at the product's current price. At most one line exists
// per product id.
func (o *Order) AddItem(p Product, quantity int) error {
	if o.finalized() {
		return &BusinessRuleError{Message: fmt.Sprintf("cannot add items to a %s order", o.Status)}
	}
	if quantity <= 0 {
		return &ValidationError{Message: "quantity must be positive"}
	}
	for _, it := range o.Items {
		if it.Product.ID == p.ID {
			return it.AddQuantity(quantity)
		}
	}
	o.Items = append(o.Items, NewItemLine(p, quantity))
	return nil
}

// RemoveProduct drops the whole line for the product id.
func (o *Order) RemoveProduct(productID int64) error {
	if o.finalized() {
		return &BusinessRuleError{Message: fmt.Sprintf("cannot remove items from a %s order", o.Status)}
	}
	for i, it := range o.Items {
		if it.Product.ID == productID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "product", ID: productID}
}

// MarkInProgress moves a pending order into preparation.
func (o *Order) MarkInProgress() error {
	if o.Status != OrderPending {
		return &InvalidTransitionError{Entity: "order", From: string(o.Status), To: string(OrderInProgress)}
	}
	o.Status = OrderInProgress
	return nil
}

// MarkCompleted finishes an order that is in preparation.
func (o *Order) MarkCompleted() error {
	if o.Status != OrderInProgress {
		return &InvalidTransitionError{Entity: "order", From: string(o.Status), To: string(OrderCompleted)}
	}
	o.Status = OrderCompleted
	return nil
}

// MarkCancelled cancels any order that has not completed.
func (o *Order) MarkCancelled() error {
	if o.Status == OrderCompleted {
		return &InvalidTransitionError{Entity: "order", From: string(o.Status), To: string(OrderCancelled)}
	}
	o.Status = OrderCancelled
	return nil
}
