package postal

import (
	"context"
	"testing"

	"github.com/busstore/backend/internal/domain/postal"
	"github.com/busstore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockAddressLookup is a mock implementation of AddressLookup
type MockAddressLookup struct {
	mock.Mock
}

func (m *MockAddressLookup) Lookup(ctx context.Context, cep string) (*postal.CEPAddress, error) {
	args := m.Called(ctx, cep)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*postal.CEPAddress), args.Error(1)
}

func TestAddressServiceResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves a formatted cep", func(t *testing.T) {
		lookup := new(MockAddressLookup)
		service := NewAddressService(lookup, zap.NewNop())

		lookup.On("Lookup", ctx, "01304001").Return(&postal.CEPAddress{
			CEP:      "01304-001",
			Street:   "Rua Augusta",
			District: "Consolação",
			City:     "São Paulo",
			State:    "SP",
		}, nil)

		resp, err := service.Resolve(ctx, "01304-001")
		require.NoError(t, err)
		assert.Equal(t, "Rua Augusta", resp.Street)
		assert.Equal(t, "SP", resp.State)
	})

	t.Run("invalid cep never reaches the lookup", func(t *testing.T) {
		lookup := new(MockAddressLookup)
		service := NewAddressService(lookup, zap.NewNop())

		_, err := service.Resolve(ctx, "1234")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CEP", domainErr.Code)
		lookup.AssertNotCalled(t, "Lookup")
	})

	t.Run("unknown cep maps to not found", func(t *testing.T) {
		lookup := new(MockAddressLookup)
		service := NewAddressService(lookup, zap.NewNop())

		lookup.On("Lookup", ctx, "99999999").Return(nil, postal.ErrCEPNotFound)

		_, err := service.Resolve(ctx, "99999-999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("provider outage is reported as lookup failure", func(t *testing.T) {
		lookup := new(MockAddressLookup)
		service := NewAddressService(lookup, zap.NewNop())

		lookup.On("Lookup", ctx, "01304001").Return(nil, postal.ErrLookupUnavailable)

		_, err := service.Resolve(ctx, "01304001")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CEP_LOOKUP_FAILED", domainErr.Code)
	})
}
