package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("creates address with valid inputs", func(t *testing.T) {
		addr, err := NewAddress("Rua Augusta", "1200", "Apto 42", "Consolação", "São Paulo", "SP", "01304-001")
		require.NoError(t, err)

		assert.Equal(t, "Rua Augusta", addr.Street())
		assert.Equal(t, "1200", addr.Number())
		assert.Equal(t, "Apto 42", addr.Complement())
		assert.Equal(t, "Consolação", addr.District())
		assert.Equal(t, "São Paulo", addr.City())
		assert.Equal(t, "SP", addr.State())
		assert.Equal(t, "01304-001", addr.PostalCode())
		assert.False(t, addr.IsEmpty())
	})

	t.Run("normalizes CEP without dash", func(t *testing.T) {
		addr, err := NewAddress("Rua Augusta", "", "", "", "São Paulo", "SP", "01304001")
		require.NoError(t, err)
		assert.Equal(t, "01304-001", addr.PostalCode())
	})

	t.Run("uppercases state", func(t *testing.T) {
		addr, err := NewAddress("Rua Augusta", "", "", "", "São Paulo", "sp", "01304-001")
		require.NoError(t, err)
		assert.Equal(t, "SP", addr.State())
	})

	t.Run("rejects empty street", func(t *testing.T) {
		_, err := NewAddress("", "", "", "", "São Paulo", "SP", "01304-001")
		require.Error(t, err)
	})

	t.Run("rejects empty city", func(t *testing.T) {
		_, err := NewAddress("Rua Augusta", "", "", "", "", "SP", "01304-001")
		require.Error(t, err)
	})

	t.Run("rejects bad state code", func(t *testing.T) {
		_, err := NewAddress("Rua Augusta", "", "", "", "São Paulo", "SPX", "01304-001")
		require.Error(t, err)
	})

	t.Run("rejects malformed CEP", func(t *testing.T) {
		for _, cep := range []string{"", "1234", "abcde-fgh", "013040011"} {
			_, err := NewAddress("Rua Augusta", "", "", "", "São Paulo", "SP", cep)
			require.Error(t, err, "cep %q should be rejected", cep)
		}
	})
}

func TestAddressFullAddress(t *testing.T) {
	addr, err := NewAddress("Rua Augusta", "1200", "Apto 42", "Consolação", "São Paulo", "SP", "01304-001")
	require.NoError(t, err)

	full := addr.FullAddress()
	assert.Equal(t, "Rua Augusta, 1200, Apto 42, Consolação, São Paulo - SP, 01304-001", full)
}

func TestAddressEquality(t *testing.T) {
	a1, err := NewAddress("Rua Augusta", "1200", "", "", "São Paulo", "SP", "01304-001")
	require.NoError(t, err)
	a2, err := NewAddress("Rua Augusta", "1200", "", "", "São Paulo", "SP", "01304001")
	require.NoError(t, err)
	a3, err := NewAddress("Rua Oscar Freire", "900", "", "", "São Paulo", "SP", "01426-001")
	require.NoError(t, err)

	assert.True(t, a1.Equals(a2))
	assert.False(t, a1.Equals(a3))
	assert.True(t, EmptyAddress().IsEmpty())
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr, err := NewAddress("Rua Augusta", "1200", "Apto 42", "Consolação", "São Paulo", "SP", "01304-001")
	require.NoError(t, err)

	data, err := json.Marshal(addr)
	require.NoError(t, err)

	var restored Address
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.True(t, addr.Equals(restored))
}
