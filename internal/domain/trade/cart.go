package trade

import (
	"github.com/busstore/backend/internal/domain/shared"
	"github.com/busstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CartLine is one product/variation entry in a customer's cart.
// The cart itself lives on the client; a CartLine is what the checkout
// request carries for each entry.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
}

// Cart is the set of lines submitted at checkout. It is a value object:
// validation only, no persistence.
type Cart struct {
	Lines []CartLine
}

// NewCart builds a cart from checkout lines, validating each entry and
// merging duplicate product/variation pairs into a single line.
func NewCart(lines []CartLine) (Cart, error) {
	if len(lines) == 0 {
		return Cart{}, shared.NewDomainError("EMPTY_CART", "Cart must contain at least one item")
	}

	merged := make([]CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return Cart{}, shared.NewDomainError("INVALID_PRODUCT", "Cart line product ID cannot be empty")
		}
		if line.Color == "" || line.Size == "" {
			return Cart{}, shared.NewDomainError("INVALID_VARIATION", "Cart line must name a color and size")
		}
		if line.Quantity <= 0 {
			return Cart{}, shared.NewDomainError("INVALID_QUANTITY", "Cart line quantity must be positive")
		}

		found := false
		for i := range merged {
			if merged[i].ProductID == line.ProductID && merged[i].Color == line.Color && merged[i].Size == line.Size {
				merged[i].Quantity += line.Quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, line)
		}
	}

	return Cart{Lines: merged}, nil
}

// IsEmpty returns true when the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalQuantity returns the total number of units across all lines
func (c Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// Total computes the cart total given a price per product ID.
// Returns an error when a line's product has no price entry.
func (c Cart) Total(prices map[uuid.UUID]valueobject.Money) (valueobject.Money, error) {
	total := valueobject.ZeroBRL()
	for _, line := range c.Lines {
		price, ok := prices[line.ProductID]
		if !ok {
			return valueobject.Money{}, shared.NewDomainError("NOT_FOUND", "No price for product in cart")
		}
		sum, err := total.Add(price.MulInt(int64(line.Quantity)))
		if err != nil {
			return valueobject.Money{}, err
		}
		total = sum
	}
	return total, nil
}
