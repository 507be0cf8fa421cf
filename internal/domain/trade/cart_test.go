package trade

import (
	"testing"

	"github.com/busstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCart(t *testing.T) {
	productID := uuid.New()

	t.Run("builds cart from valid lines", func(t *testing.T) {
		cart, err := NewCart([]CartLine{
			{ProductID: productID, Color: "red", Size: "M", Quantity: 2},
		})
		require.NoError(t, err)
		assert.Len(t, cart.Lines, 1)
		assert.Equal(t, 2, cart.TotalQuantity())
		assert.False(t, cart.IsEmpty())
	})

	t.Run("merges duplicate variation lines", func(t *testing.T) {
		cart, err := NewCart([]CartLine{
			{ProductID: productID, Color: "red", Size: "M", Quantity: 2},
			{ProductID: productID, Color: "red", Size: "M", Quantity: 3},
			{ProductID: productID, Color: "blue", Size: "M", Quantity: 1},
		})
		require.NoError(t, err)
		assert.Len(t, cart.Lines, 2)
		assert.Equal(t, 6, cart.TotalQuantity())
		assert.Equal(t, 5, cart.Lines[0].Quantity)
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		_, err := NewCart(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one item")
	})

	t.Run("rejects nil product ID", func(t *testing.T) {
		_, err := NewCart([]CartLine{{Color: "red", Size: "M", Quantity: 1}})
		require.Error(t, err)
	})

	t.Run("rejects missing color or size", func(t *testing.T) {
		_, err := NewCart([]CartLine{{ProductID: productID, Size: "M", Quantity: 1}})
		require.Error(t, err)

		_, err = NewCart([]CartLine{{ProductID: productID, Color: "red", Quantity: 1}})
		require.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewCart([]CartLine{{ProductID: productID, Color: "red", Size: "M", Quantity: 0}})
		require.Error(t, err)
	})
}

func TestCartTotal(t *testing.T) {
	teeID := uuid.New()
	mugID := uuid.New()

	cart, err := NewCart([]CartLine{
		{ProductID: teeID, Color: "red", Size: "M", Quantity: 2},
		{ProductID: mugID, Color: "white", Size: "unique", Quantity: 1},
	})
	require.NoError(t, err)

	t.Run("sums line totals from price map", func(t *testing.T) {
		total, err := cart.Total(map[uuid.UUID]valueobject.Money{
			teeID: valueobject.NewMoneyBRLFromFloat(129.90),
			mugID: valueobject.NewMoneyBRLFromFloat(39.90),
		})
		require.NoError(t, err)
		assert.Equal(t, "BRL 299.70", total.String())
	})

	t.Run("fails when a price is missing", func(t *testing.T) {
		_, err := cart.Total(map[uuid.UUID]valueobject.Money{
			teeID: valueobject.NewMoneyBRLFromFloat(129.90),
		})
		require.Error(t, err)
	})
}
