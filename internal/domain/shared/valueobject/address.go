package valueobject

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// cepPattern matches Brazilian postal codes, with or without the dash
var cepPattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)

// Address is a value object representing a Brazilian shipping/billing address.
// Immutable once constructed.
type Address struct {
	street     string
	number     string
	complement string
	district   string
	city       string
	state      string // two-letter UF code
	postalCode string // CEP, normalized to 00000-000
}

// NewAddress creates a new Address. Street, city, state and postal code are
// required; number, complement and district are optional.
func NewAddress(street, number, complement, district, city, state, postalCode string) (Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	state = strings.ToUpper(strings.TrimSpace(state))
	postalCode = strings.TrimSpace(postalCode)

	if street == "" {
		return Address{}, errors.New("street cannot be empty")
	}
	if city == "" {
		return Address{}, errors.New("city cannot be empty")
	}
	if len(state) != 2 {
		return Address{}, errors.New("state must be a two-letter UF code")
	}
	if !cepPattern.MatchString(postalCode) {
		return Address{}, errors.New("postal code must match 00000-000")
	}

	return Address{
		street:     street,
		number:     strings.TrimSpace(number),
		complement: strings.TrimSpace(complement),
		district:   strings.TrimSpace(district),
		city:       city,
		state:      state,
		postalCode: normalizeCEP(postalCode),
	}, nil
}

// EmptyAddress returns an empty address
func EmptyAddress() Address {
	return Address{}
}

// Street returns the street name
func (a Address) Street() string { return a.street }

// Number returns the street number
func (a Address) Number() string { return a.number }

// Complement returns the address complement
func (a Address) Complement() string { return a.complement }

// District returns the district/neighborhood
func (a Address) District() string { return a.district }

// City returns the city
func (a Address) City() string { return a.city }

// State returns the two-letter UF code
func (a Address) State() string { return a.state }

// PostalCode returns the normalized CEP
func (a Address) PostalCode() string { return a.postalCode }

// IsEmpty returns true if the address has no data
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// FullAddress returns a single-line representation
func (a Address) FullAddress() string {
	parts := make([]string, 0, 6)
	line := a.street
	if a.number != "" {
		line += ", " + a.number
	}
	parts = append(parts, line)
	if a.complement != "" {
		parts = append(parts, a.complement)
	}
	if a.district != "" {
		parts = append(parts, a.district)
	}
	parts = append(parts, a.city+" - "+a.state, a.postalCode)
	return strings.Join(parts, ", ")
}

// Equals returns true if all fields match
func (a Address) Equals(other Address) bool {
	return a == other
}

func normalizeCEP(cep string) string {
	digits := strings.ReplaceAll(cep, "-", "")
	return digits[:5] + "-" + digits[5:]
}

type addressJSON struct {
	Street     string `json:"street"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// MarshalJSON implements json.Marshaler so Address round-trips through
// jsonb columns and API payloads despite its unexported fields.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Street:     a.street,
		Number:     a.number,
		Complement: a.complement,
		District:   a.district,
		City:       a.city,
		State:      a.state,
		PostalCode: a.postalCode,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Stored addresses were
// validated on the way in, so this restores fields without re-validating.
func (a *Address) UnmarshalJSON(data []byte) error {
	var raw addressJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.street = raw.Street
	a.number = raw.Number
	a.complement = raw.Complement
	a.district = raw.District
	a.city = raw.City
	a.state = raw.State
	a.postalCode = raw.PostalCode
	return nil
}
