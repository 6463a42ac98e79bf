package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coke() Product {
	return Product{ID: 1, Name: "Coke", Price: 8, Availability: true, Category: "drinks", Visibility: true}
}

func pizza() Product {
	return Product{ID: 2, Name: "Pizza Margherita", Price: 30, Availability: true, Category: "mains", Visibility: true}
}

func TestAddItem_MergesOnSameProduct(t *testing.T) {
	o := NewOrder(5, 1)

	require.NoError(t, o.AddItem(coke(), 1))
	require.NoError(t, o.AddItem(coke(), 3))

	require.Len(t, o.Items, 1)
	assert.Equal(t, 4, o.Items[0].Quantity)
}

func TestAddItem_AppendsDistinctProducts(t *testing.T) {
	o := NewOrder(5, 1)

	require.NoError(t, o.AddItem(pizza(), 2))
	require.NoError(t, o.AddItem(coke(), 3))

	require.Len(t, o.Items, 2)
	assert.Equal(t, 84.0, o.TotalPrice()) // 30*2 + 8*3
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	o := NewOrder(5, 1)

	var ve *ValidationError
	assert.ErrorAs(t, o.AddItem(coke(), 0), &ve)
	assert.ErrorAs(t, o.AddItem(coke(), -2), &ve)
	assert.Empty(t, o.Items)
}

func TestAddItem_RejectedWhenFinalized(t *testing.T) {
	for _, status := range []OrderStatus{OrderCompleted, OrderCancelled} {
		o := NewOrder(5, 1)
		o.Status = status

		var bre *BusinessRuleError
		assert.ErrorAs(t, o.AddItem(coke(), 1), &bre, "status %s", status)
	}
}

func TestRemoveProduct(t *testing.T) {
	o := NewOrder(5, 1)
	require.NoError(t, o.AddItem(coke(), 2))
	require.NoError(t, o.AddItem(pizza(), 1))

	require.NoError(t, o.RemoveProduct(coke().ID))
	require.Len(t, o.Items, 1)
	assert.Equal(t, pizza().ID, o.Items[0].Product.ID)

	var nfe *NotFoundError
	require.ErrorAs(t, o.RemoveProduct(99), &nfe)
	assert.Equal(t, "product", nfe.Kind)
	assert.Equal(t, int64(99), nfe.ID)

	o.Status = OrderCompleted
	var bre *BusinessRuleError
	assert.ErrorAs(t, o.RemoveProduct(pizza().ID), &bre)
}

// Every transition outside the table pending -> in_progress -> completed,
// with cancelled reachable from the first two, must fail and leave the
// status unchanged.
func TestTransitionTableIsExhaustive(t *testing.T) {
	transitions := map[string]func(*Order) error{
		"in_progress": (*Order).MarkInProgress,
		"completed":   (*Order).MarkCompleted,
		"cancelled":   (*Order).MarkCancelled,
	}
	allowed := map[OrderStatus]map[string]bool{
		OrderPending:    {"in_progress": true, "cancelled": true},
		OrderInProgress: {"completed": true, "cancelled": true},
		OrderCompleted:  {},
		// Cancelling an already cancelled order passes the guard (only a
		// completed order blocks cancellation) and is a no-op in effect.
		OrderCancelled: {"cancelled": true},
	}

	for from, ops := range allowed {
		for name, do := range transitions {
			o := NewOrder(5, 1)
			o.Status = from

			err := do(o)
			if ops[name] {
				assert.NoError(t, err, "%s -> %s", from, name)
			} else {
				var ite *InvalidTransitionError
				require.ErrorAs(t, err, &ite, "%s -> %s", from, name)
				assert.Equal(t, string(from), ite.From)
				assert.Equal(t, name, ite.To)
				assert.Equal(t, from, o.Status, "status must not change on a failed transition")
			}
		}
	}
}

func TestMarkCancelled_FromPendingAndInProgress(t *testing.T) {
	o := NewOrder(5, 1)
	require.NoError(t, o.MarkCancelled())
	assert.Equal(t, OrderCancelled, o.Status)

	o = NewOrder(5, 1)
	require.NoError(t, o.MarkInProgress())
	require.NoError(t, o.MarkCancelled())
	assert.Equal(t, OrderCancelled, o.Status)
}

func TestTotalPrice_UsesLineUnitPrice(t *testing.T) {
	o := NewOrder(5, 1)
	require.NoError(t, o.AddItem(pizza(), 2))

	// Catalog price changes after the line was created; the line keeps
	// billing at the price it was added with.
	o.Items[0].Product.Price = 50
	assert.Equal(t, 60.0, o.TotalPrice())
}

func TestErrorKindsAreDistinct(t *testing.T) {
	o := NewOrder(5, 1)
	o.Status = OrderCompleted

	err := o.AddItem(coke(), 1)
	var ve *ValidationError
	assert.False(t, errors.As(err, &ve), "finalized order must not surface as validation")
}
