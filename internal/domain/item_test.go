package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemLineQuantity(t *testing.T) {
	l := NewItemLine(coke(), 2)

	require.NoError(t, l.AddQuantity(3))
	assert.Equal(t, 5, l.Quantity)

	require.NoError(t, l.RemoveQuantity(4))
	assert.Equal(t, 1, l.Quantity)

	var ve *ValidationError
	assert.ErrorAs(t, l.AddQuantity(-1), &ve)
	assert.ErrorAs(t, l.RemoveQuantity(-1), &ve)
	assert.ErrorAs(t, l.RemoveQuantity(2), &ve, "result may not go negative")
	assert.Equal(t, 1, l.Quantity, "failed mutation must not change quantity")
}

func TestItemLineTotal(t *testing.T) {
	l := NewItemLine(pizza(), 3)
	assert.Equal(t, 90.0, l.Total())

	// Reloaded lines bill at the stored snapshot, not the catalog price.
	l.UnitPrice = 25
	assert.Equal(t, 75.0, l.Total())
}
