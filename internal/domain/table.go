package domain

import (
	"fmt"
	"strings"
)

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
)

// Table owns the active orders of one seating session. When available it has
// zero people and no orders; closing a session leaves the orders in storage
// but drops them from the live graph.
type Table struct {
	ID             int64
	Status         TableStatus
	NumberOfPeople int
	Orders         []*Order
}

// TotalBill sums every non-cancelled order on the table.
func (t *Table) TotalBill() float64 {
	var total float64
	for _, o := range t.Orders {
		if o.Status != OrderCancelled {
			total += o.TotalPrice()
		}
	}
	return total
}

// Open seats a party, clearing any orders left from a previous session.
func (t *Table) Open(numberOfPeople int) error {
	if t.Status == TableOccupied {
		return &BusinessRuleError{Message: fmt.Sprintf("table %d is already occupied", t.ID)}
	}
	if numberOfPeople <= 0 {
		return &ValidationError{Message: "number of people must be positive"}
	}
	t.Status = TableOccupied
	t.NumberOfPeople = numberOfPeople
	t.Orders = nil
	return nil
}

// AddNewOrder attaches a pending order belonging to this table.
func (t *Table) AddNewOrder(o *Order) error {
	if t.Status != TableOccupied {
		return &BusinessRuleError{Message: fmt.Sprintf("table %d is not occupied", t.ID)}
	}
	if o.TableNumber != t.ID {
		return &BusinessRuleError{Message: fmt.Sprintf("order %d does not belong to table %d", o.ID, t.ID)}
	}
	if o.Status != OrderPending {
		return &BusinessRuleError{Message: "only pending orders can be added to a table"}
	}
	t.Orders = append(t.Orders, o)
	return nil
}

// Close ends the session and returns the completed orders for archiving.
// It fails with every blocking order id at once, so the waiter sees the full
// list rather than one offender per attempt.
func (t *Table) Close() ([]*Order, error) {
	if t.Status != TableOccupied {
		return nil, &BusinessRuleError{Message: fmt.Sprintf("table %d is not occupied", t.ID)}
	}

	var blocking []string
	for _, o := range t.Orders {
		if o.Status == OrderPending || o.Status == OrderInProgress {
			blocking = append(blocking, fmt.Sprintf("%d", o.ID))
		}
	}
	if len(blocking) > 0 {
		return nil, &BusinessRuleError{
			Message: fmt.Sprintf("cannot close table %d: unfinished orders %s", t.ID, strings.Join(blocking, ", ")),
		}
	}

	var completed []*Order
	for _, o := range t.Orders {
		if o.Status == OrderCompleted {
			completed = append(completed, o)
		}
	}

	t.Status = TableAvailable
	t.NumberOfPeople = 0
	t.Orders = nil
	return completed, nil
}
