package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Gateway errors
var (
	ErrInvalidToken          = errors.New("payment: card token cannot be empty")
	ErrInvalidAmount         = errors.New("payment: amount must be positive")
	ErrInvalidPayerEmail     = errors.New("payment: payer email cannot be empty")
	ErrInvalidIdentification = errors.New("payment: payer identification is incomplete")
	ErrGatewayUnavailable    = errors.New("payment: gateway temporarily unavailable")
	ErrGatewayRequestFailed  = errors.New("payment: gateway request failed")
	ErrInvalidResponse       = errors.New("payment: invalid gateway response")
)

// Status represents the state the provider reports for a card payment
type Status string

const (
	StatusApproved  Status = "approved"
	StatusInProcess Status = "in_process"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusError     Status = "error"
)

// IsValid returns true if the status is one the provider can report
func (s Status) IsValid() bool {
	switch s {
	case StatusApproved, StatusInProcess, StatusRejected, StatusCancelled, StatusError:
		return true
	default:
		return false
	}
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsSuccess returns true if the payment went through
func (s Status) IsSuccess() bool {
	return s == StatusApproved
}

// IsFinal returns true for terminal states. in_process payments resolve
// later through the provider; the store treats them as not yet paid.
func (s Status) IsFinal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled, StatusError:
		return true
	default:
		return false
	}
}

// Identification is the payer's tax document (CPF/CNPJ)
type Identification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// Payer identifies who is paying
type Payer struct {
	Email          string         `json:"email"`
	Identification Identification `json:"identification"`
}

// CardPaymentRequest carries a tokenized card charge to the provider.
// The raw card number never reaches this backend; the storefront
// tokenizes it with the provider's SDK and sends only the token.
type CardPaymentRequest struct {
	Token           string
	Amount          decimal.Decimal
	Currency        string
	Installments    int
	PaymentMethodID string
	IssuerID        string
	Description     string
	Payer           Payer
}

// Validate validates the card payment request
func (r *CardPaymentRequest) Validate() error {
	if r.Token == "" {
		return ErrInvalidToken
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if r.Payer.Email == "" {
		return ErrInvalidPayerEmail
	}
	if (r.Payer.Identification.Type == "") != (r.Payer.Identification.Number == "") {
		return ErrInvalidIdentification
	}
	return nil
}

// CardPaymentResult is the provider's answer to a charge attempt
type CardPaymentResult struct {
	// ProviderPaymentID is the payment's ID on the provider side
	ProviderPaymentID string
	// Status is the provider-reported payment status
	Status Status
	// StatusDetail is the provider's machine-readable detail code,
	// e.g. "cc_rejected_insufficient_amount"
	StatusDetail string
	// Method is the payment method that was charged, e.g. "visa"
	Method string
	// Installments echoes the number of installments charged
	Installments int
	// RawResponse is the original provider response body (JSON)
	RawResponse string
}

// CardGateway is the port to the external card payment provider
type CardGateway interface {
	// ProcessPayment submits a tokenized card charge and returns the
	// provider's verdict. A non-nil error means the charge never got a
	// verdict (network failure, provider outage); a rejected charge is a
	// successful call with Status rejected.
	ProcessPayment(ctx context.Context, req CardPaymentRequest) (*CardPaymentResult, error)
}

// rejectionMessages maps provider status details to buyer-facing text.
// Unknown details fall back to a generic message.
var rejectionMessages = map[string]string{
	"cc_rejected_insufficient_amount":      "Your card has insufficient funds.",
	"cc_rejected_bad_filled_card_number":   "Check the card number.",
	"cc_rejected_bad_filled_date":          "Check the card expiration date.",
	"cc_rejected_bad_filled_security_code": "Check the card security code.",
	"cc_rejected_bad_filled_other":         "Check the card details.",
	"cc_rejected_call_for_authorize":       "You must authorize the payment with your card issuer.",
	"cc_rejected_card_disabled":            "Call your card issuer to activate the card.",
	"cc_rejected_duplicated_payment":       "You already made a payment for this amount.",
	"cc_rejected_high_risk":                "The payment was declined. Try another payment method.",
	"cc_rejected_max_attempts":             "You reached the attempt limit. Try another card.",
	"cc_rejected_other_reason":             "The card issuer declined the payment.",
}

// RejectionMessage returns buyer-facing text for a provider status detail
func RejectionMessage(statusDetail string) string {
	if msg, ok := rejectionMessages[statusDetail]; ok {
		return msg
	}
	return "The payment could not be processed. Try another payment method."
}
