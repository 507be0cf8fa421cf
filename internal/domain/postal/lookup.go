package postal

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// Common errors
var (
	ErrInvalidCEP         = errors.New("postal: invalid CEP")
	ErrCEPNotFound        = errors.New("postal: CEP not found")
	ErrLookupUnavailable  = errors.New("postal: lookup service unavailable")
	ErrLookupFailed       = errors.New("postal: lookup request failed")
	ErrInvalidLookupReply = errors.New("postal: invalid lookup response")
)

var cepDigits = regexp.MustCompile(`^\d{8}$`)

// CEPAddress is the address registered for a Brazilian postal code.
// Number and complement are always filled in by the buyer.
type CEPAddress struct {
	CEP      string // normalized to 00000-000
	Street   string
	District string
	City     string
	State    string // two-letter UF code
}

// AddressLookup resolves a CEP to its registered address
type AddressLookup interface {
	Lookup(ctx context.Context, cep string) (*CEPAddress, error)
}

// NormalizeCEP strips formatting and validates the postal code, returning
// the bare eight digits.
func NormalizeCEP(cep string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cep)

	if !cepDigits.MatchString(digits) {
		return "", ErrInvalidCEP
	}
	return digits, nil
}

// FormatCEP renders eight bare digits as 00000-000
func FormatCEP(digits string) string {
	if len(digits) != 8 {
		return digits
	}
	return digits[:5] + "-" + digits[5:]
}
