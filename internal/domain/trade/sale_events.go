package trade

import (
	"github.com/busstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the trade domain
const (
	EventTypeSaleRecorded  = "trade.sale.recorded"
	EventTypeSaleShipped   = "trade.sale.shipped"
	EventTypeSaleCancelled = "trade.sale.cancelled"
)

// SaleRecordedEvent is raised when a paid sale enters the ledger
type SaleRecordedEvent struct {
	shared.BaseDomainEvent
	SaleNumber        string          `json:"sale_number"`
	BuyerEmail        string          `json:"buyer_email"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	ProviderPaymentID string          `json:"provider_payment_id"`
}

// NewSaleRecordedEvent creates a SaleRecordedEvent
func NewSaleRecordedEvent(s *Sale) *SaleRecordedEvent {
	return &SaleRecordedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeSaleRecorded, "Sale", s.ID),
		SaleNumber:        s.SaleNumber,
		BuyerEmail:        s.BuyerEmail,
		TotalAmount:       s.TotalAmount,
		ProviderPaymentID: s.Payment.ProviderPaymentID,
	}
}

// SaleShippedEvent is raised when a sale is marked shipped
type SaleShippedEvent struct {
	shared.BaseDomainEvent
	SaleNumber string `json:"sale_number"`
	BuyerEmail string `json:"buyer_email"`
}

// NewSaleShippedEvent creates a SaleShippedEvent
func NewSaleShippedEvent(s *Sale) *SaleShippedEvent {
	return &SaleShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleShipped, "Sale", s.ID),
		SaleNumber:      s.SaleNumber,
		BuyerEmail:      s.BuyerEmail,
	}
}

// SaleCancelledEvent is raised when a sale's fulfillment is cancelled
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	SaleNumber string `json:"sale_number"`
	Reason     string `json:"reason"`
}

// NewSaleCancelledEvent creates a SaleCancelledEvent
func NewSaleCancelledEvent(s *Sale, reason string) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCancelled, "Sale", s.ID),
		SaleNumber:      s.SaleNumber,
		Reason:          reason,
	}
}
