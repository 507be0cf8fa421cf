package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(99.90), BRL)
		require.NoError(t, err)
		assert.Equal(t, BRL, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.90)))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		require.Error(t, err)
	})

	t.Run("BRL constructors default the currency", func(t *testing.T) {
		assert.Equal(t, BRL, NewMoneyBRLFromFloat(10).Currency())
		assert.Equal(t, BRL, NewMoneyBRL(decimal.NewFromInt(10)).Currency())
		assert.Equal(t, BRL, ZeroBRL().Currency())
	})

	t.Run("from string", func(t *testing.T) {
		m, err := NewMoneyBRLFromString("129.90")
		require.NoError(t, err)
		assert.Equal(t, "BRL 129.90", m.String())

		_, err = NewMoneyBRLFromString("not-a-number")
		require.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		sum, err := NewMoneyBRLFromFloat(100).Add(NewMoneyBRLFromFloat(29.90))
		require.NoError(t, err)
		assert.Equal(t, "BRL 129.90", sum.String())
	})

	t.Run("sub", func(t *testing.T) {
		diff, err := NewMoneyBRLFromFloat(100).Sub(NewMoneyBRLFromFloat(30))
		require.NoError(t, err)
		assert.Equal(t, "BRL 70.00", diff.String())
	})

	t.Run("add rejects currency mismatch", func(t *testing.T) {
		usd, err := NewMoney(decimal.NewFromInt(10), USD)
		require.NoError(t, err)

		_, err = NewMoneyBRLFromFloat(10).Add(usd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "currency mismatch")
	})

	t.Run("multiply by quantity", func(t *testing.T) {
		total := NewMoneyBRLFromFloat(129.90).MulInt(3)
		assert.Equal(t, "BRL 389.70", total.String())
	})

	t.Run("operations do not mutate the receiver", func(t *testing.T) {
		m := NewMoneyBRLFromFloat(50)
		_, err := m.Add(NewMoneyBRLFromFloat(10))
		require.NoError(t, err)
		assert.Equal(t, "BRL 50.00", m.String())
	})
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, ZeroBRL().IsZero())
	assert.True(t, NewMoneyBRLFromFloat(1).IsPositive())
	assert.True(t, NewMoneyBRLFromFloat(-1).IsNegative())

	assert.True(t, NewMoneyBRLFromFloat(10).Equals(NewMoneyBRL(decimal.NewFromInt(10))))
	usd, _ := NewMoney(decimal.NewFromInt(10), USD)
	assert.False(t, NewMoneyBRLFromFloat(10).Equals(usd))
}
