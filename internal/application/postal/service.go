package postal

import (
	"context"
	"errors"

	"github.com/busstore/backend/internal/domain/postal"
	"github.com/busstore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AddressResponse is the autofill payload for a CEP lookup. The storefront
// fills the street, district, city and state fields from it; number and
// complement stay with the buyer.
type AddressResponse struct {
	CEP      string `json:"cep"`
	Street   string `json:"street"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// AddressService resolves postal codes for address autofill
type AddressService struct {
	lookup postal.AddressLookup
	logger *zap.Logger
}

// NewAddressService creates a new address service
func NewAddressService(lookup postal.AddressLookup, logger *zap.Logger) *AddressService {
	return &AddressService{
		lookup: lookup,
		logger: logger,
	}
}

// Resolve looks up the address registered for a CEP
func (s *AddressService) Resolve(ctx context.Context, cep string) (*AddressResponse, error) {
	digits, err := postal.NormalizeCEP(cep)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CEP", "CEP must have 8 digits")
	}

	address, err := s.lookup.Lookup(ctx, digits)
	if err != nil {
		switch {
		case errors.Is(err, postal.ErrCEPNotFound):
			return nil, shared.ErrNotFound
		default:
			s.logger.Error("cep lookup failed", zap.String("cep", digits), zap.Error(err))
			return nil, shared.NewDomainError("CEP_LOOKUP_FAILED", "Postal code lookup is unavailable")
		}
	}

	return &AddressResponse{
		CEP:      address.CEP,
		Street:   address.Street,
		District: address.District,
		City:     address.City,
		State:    address.State,
	}, nil
}
