package trade

import (
	"time"

	"github.com/busstore/backend/internal/domain/shared"
	"github.com/busstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the fulfillment status of a sale
type SaleStatus string

const (
	SaleStatusPaid      SaleStatus = "PAID"
	SaleStatusShipped   SaleStatus = "SHIPPED"
	SaleStatusDelivered SaleStatus = "DELIVERED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPaid, SaleStatusShipped, SaleStatusDelivered, SaleStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case SaleStatusPaid:
		return target == SaleStatusShipped || target == SaleStatusCancelled
	case SaleStatusShipped:
		return target == SaleStatusDelivered
	case SaleStatusDelivered, SaleStatusCancelled:
		return false
	}
	return false
}

// SaleItem is a line in a recorded sale. It snapshots the product's code,
// name, variation and unit price at the time of purchase, so later catalog
// edits never rewrite history.
type SaleItem struct {
	ID          uuid.UUID       `json:"id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Color       string          `json:"color"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewSaleItem creates a sale line snapshot
func NewSaleItem(saleID, productID uuid.UUID, productCode, productName, color, size string, quantity int, unitPrice valueobject.Money) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if color == "" || size == "" {
		return nil, shared.NewDomainError("INVALID_VARIATION", "Sale item must name a color and size")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ProductID:   productID,
		ProductCode: productCode,
		ProductName: productName,
		Color:       color,
		Size:        size,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      unitPrice.MulInt(int64(quantity)).Amount(),
	}, nil
}

// GetUnitPriceMoney returns the unit price as a Money value object
func (i *SaleItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(i.UnitPrice)
}

// GetAmountMoney returns the line amount as a Money value object
func (i *SaleItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(i.Amount)
}

// PaymentInfo records how a sale was paid: the provider's payment ID and
// the status/method it reported at approval time.
type PaymentInfo struct {
	ProviderPaymentID string `json:"provider_payment_id"`
	Status            string `json:"status"`
	Method            string `json:"method"`
	Installments      int    `json:"installments"`
}

// Sale is the aggregate root for a completed purchase. Sales form an
// append-only ledger: once recorded, items and payment data never change;
// only the fulfillment status moves forward.
type Sale struct {
	shared.BaseAggregateRoot
	SaleNumber      string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	BuyerEmail      string              `gorm:"type:varchar(255);not null;index"`
	BuyerName       string              `gorm:"type:varchar(200)"`
	Items           []SaleItem          `gorm:"serializer:json;type:jsonb;not null"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Payment         PaymentInfo         `gorm:"serializer:json;type:jsonb;not null"`
	ShippingAddress valueobject.Address `gorm:"serializer:json;type:jsonb"`
	Status          SaleStatus          `gorm:"type:varchar(20);not null;default:'PAID'"`
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale records a sale after a successful payment. The sale is born PAID.
func NewSale(saleNumber, buyerEmail, buyerName string, payment PaymentInfo, shippingAddress valueobject.Address) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if len(saleNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot exceed 50 characters")
	}
	if buyerEmail == "" {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer email cannot be empty")
	}
	if payment.ProviderPaymentID == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Provider payment ID cannot be empty")
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleNumber:        saleNumber,
		BuyerEmail:        buyerEmail,
		BuyerName:         buyerName,
		Items:             make([]SaleItem, 0),
		TotalAmount:       decimal.Zero,
		Payment:           payment,
		ShippingAddress:   shippingAddress,
		Status:            SaleStatusPaid,
	}

	sale.AddDomainEvent(NewSaleRecordedEvent(sale))

	return sale, nil
}

// AddItem appends a line snapshot to a sale still being assembled.
// Once the sale is persisted the ledger is append-only, so callers add all
// lines before the first save.
func (s *Sale) AddItem(productID uuid.UUID, productCode, productName, color, size string, quantity int, unitPrice valueobject.Money) (*SaleItem, error) {
	if s.Status != SaleStatusPaid {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a sale past fulfillment")
	}

	item, err := NewSaleItem(s.ID, productID, productCode, productName, color, size, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.recalculateTotal()
	s.UpdatedAt = time.Now()

	return item, nil
}

// MarkShipped transitions the sale to SHIPPED
func (s *Sale) MarkShipped() error {
	if !s.Status.CanTransitionTo(SaleStatusShipped) {
		return shared.NewDomainError("INVALID_STATE", "Sale cannot be shipped from status "+s.Status.String())
	}

	now := time.Now()
	s.Status = SaleStatusShipped
	s.ShippedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleShippedEvent(s))

	return nil
}

// MarkDelivered transitions the sale to DELIVERED
func (s *Sale) MarkDelivered() error {
	if !s.Status.CanTransitionTo(SaleStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", "Sale cannot be delivered from status "+s.Status.String())
	}

	now := time.Now()
	s.Status = SaleStatusDelivered
	s.DeliveredAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// Cancel transitions the sale to CANCELLED with a reason (refunds, fraud).
// Cancelling does not rewrite the ledger entry; it only closes fulfillment.
func (s *Sale) Cancel(reason string) error {
	if !s.Status.CanTransitionTo(SaleStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Sale cannot be cancelled from status "+s.Status.String())
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason cannot be empty")
	}

	now := time.Now()
	s.Status = SaleStatusCancelled
	s.CancelledAt = &now
	s.CancelReason = reason
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleCancelledEvent(s, reason))

	return nil
}

// GetTotalMoney returns the sale total as a Money value object
func (s *Sale) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(s.TotalAmount)
}

// ItemCount returns the number of lines in the sale
func (s *Sale) ItemCount() int {
	return len(s.Items)
}

func (s *Sale) recalculateTotal() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Amount)
	}
	s.TotalAmount = total
}
