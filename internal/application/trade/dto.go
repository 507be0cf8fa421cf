package trade

import (
	"time"

	"github.com/busstore/backend/internal/domain/shared/valueobject"
	"github.com/busstore/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Checkout outcomes reported to the storefront. The storefront decides
// what to render from the outcome alone.
const (
	OutcomeSubmitted = "submitted" // payment approved, sale recorded
	OutcomeCancelled = "cancelled" // payment rejected or cancelled by the provider
	OutcomeError     = "error"     // charge never got a verdict
)

// CartLineRequest is one cart entry in a checkout or stock-check payload
type CartLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Color     string    `json:"color" binding:"required"`
	Size      string    `json:"size" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckStockRequest asks whether every cart line is currently in stock
type CheckStockRequest struct {
	Items []CartLineRequest `json:"items" binding:"required,min=1,dive"`
}

// StockIssue describes one cart line that cannot be fulfilled
type StockIssue struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Color       string    `json:"color"`
	Size        string    `json:"size"`
	Requested   int       `json:"requested"`
	Available   int       `json:"available"`
	Reason      string    `json:"reason"`
}

// CheckStockResponse reports the pre-payment availability check. A clean
// check does not reserve anything; stock is only committed after payment.
type CheckStockResponse struct {
	Available bool         `json:"available"`
	Issues    []StockIssue `json:"issues,omitempty"`
}

// IdentificationRequest is the payer's tax document
type IdentificationRequest struct {
	Type   string `json:"type" binding:"required,oneof=CPF CNPJ"`
	Number string `json:"number" binding:"required,min=11,max=14"`
}

// AddressRequest is a shipping address payload
type AddressRequest struct {
	Street     string `json:"street" binding:"required,max=200"`
	Number     string `json:"number" binding:"max=20"`
	Complement string `json:"complement" binding:"max=100"`
	District   string `json:"district" binding:"max=100"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"required,len=2"`
	PostalCode string `json:"postal_code" binding:"required"`
}

// ToAddress converts the payload into the Address value object
func (r AddressRequest) ToAddress() (valueobject.Address, error) {
	return valueobject.NewAddress(r.Street, r.Number, r.Complement, r.District, r.City, r.State, r.PostalCode)
}

// CheckoutRequest carries the cart plus the tokenized card payload. The
// card number itself never reaches this backend.
type CheckoutRequest struct {
	Items           []CartLineRequest     `json:"items" binding:"required,min=1,dive"`
	Token           string                `json:"token" binding:"required"`
	PaymentMethodID string                `json:"payment_method_id" binding:"required"`
	IssuerID        string                `json:"issuer_id"`
	Installments    int                   `json:"installments" binding:"min=1,max=12"`
	Email           string                `json:"email" binding:"required,email"`
	Identification  IdentificationRequest `json:"identification" binding:"required"`
	BuyerName       string                `json:"buyer_name" binding:"max=200"`
	ShippingAddress AddressRequest        `json:"shipping_address" binding:"required"`
}

// CheckoutResponse is the storefront-facing verdict of a checkout attempt
type CheckoutResponse struct {
	Outcome      string        `json:"outcome"`
	Status       string        `json:"status"`
	StatusDetail string        `json:"status_detail,omitempty"`
	Message      string        `json:"message,omitempty"`
	Sale         *SaleResponse `json:"sale,omitempty"`
	StockIssues  []StockIssue  `json:"stock_issues,omitempty"`
}

// SaleItemResponse is one line of a recorded sale
type SaleItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Color       string          `json:"color"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// SaleResponse represents a recorded sale in API responses
type SaleResponse struct {
	ID              uuid.UUID           `json:"id"`
	SaleNumber      string              `json:"sale_number"`
	BuyerEmail      string              `json:"buyer_email"`
	BuyerName       string              `json:"buyer_name,omitempty"`
	Items           []SaleItemResponse  `json:"items"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	PaymentMethod   string              `json:"payment_method"`
	ShippingAddress valueobject.Address `json:"shipping_address"`
	CreatedAt       time.Time           `json:"created_at"`
	ShippedAt       *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	BuyerEmail string `form:"buyer_email"`
	Status     string `form:"status" binding:"omitempty,oneof=PAID SHIPPED DELIVERED CANCELLED"`
	Page       int    `form:"page" binding:"min=0"`
	PageSize   int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CancelSaleRequest carries the cancel reason
type CancelSaleRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// RevenueSummaryResponse is the admin dashboard's ledger rollup.
// Cancelled sales are excluded from the revenue figure.
type RevenueSummaryResponse struct {
	SaleCount      int64           `json:"sale_count"`
	Revenue        decimal.Decimal `json:"revenue"`
	ShippedCount   int64           `json:"shipped_count"`
	DeliveredCount int64           `json:"delivered_count"`
	CancelledCount int64           `json:"cancelled_count"`
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *trade.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, SaleItemResponse{
			ProductID:   item.ProductID,
			ProductCode: item.ProductCode,
			ProductName: item.ProductName,
			Color:       item.Color,
			Size:        item.Size,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}

	return SaleResponse{
		ID:              s.ID,
		SaleNumber:      s.SaleNumber,
		BuyerEmail:      s.BuyerEmail,
		BuyerName:       s.BuyerName,
		Items:           items,
		TotalAmount:     s.TotalAmount,
		Status:          string(s.Status),
		PaymentStatus:   s.Payment.Status,
		PaymentMethod:   s.Payment.Method,
		ShippingAddress: s.ShippingAddress,
		CreatedAt:       s.CreatedAt,
		ShippedAt:       s.ShippedAt,
		DeliveredAt:     s.DeliveredAt,
	}
}

func toCartLines(items []CartLineRequest) []trade.CartLine {
	lines := make([]trade.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, trade.CartLine{
			ProductID: item.ProductID,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}
	return lines
}
