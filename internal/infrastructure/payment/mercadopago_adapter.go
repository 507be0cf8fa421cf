package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/busstore/backend/internal/domain/payment"
	"github.com/busstore/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const paymentsPath = "/v1/payments"

// MercadoPagoAdapter implements CardGateway against the Mercado Pago
// payments API. The storefront tokenizes the card with the provider's
// JS SDK; this adapter only ever sees the token.
type MercadoPagoAdapter struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewMercadoPagoAdapter creates a new Mercado Pago adapter
func NewMercadoPagoAdapter(cfg config.PaymentConfig, logger *zap.Logger) *MercadoPagoAdapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MercadoPagoAdapter{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// paymentRequestBody is the provider's wire format for a card charge
type paymentRequestBody struct {
	Token             string          `json:"token"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
	Installments      int             `json:"installments"`
	PaymentMethodID   string          `json:"payment_method_id,omitempty"`
	IssuerID          string          `json:"issuer_id,omitempty"`
	Description       string          `json:"description,omitempty"`
	Payer             paymentPayer    `json:"payer"`
	Capture           bool            `json:"capture"`
}

type paymentPayer struct {
	Email          string                 `json:"email"`
	Identification *paymentIdentification `json:"identification,omitempty"`
}

type paymentIdentification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// paymentResponseBody is the subset of the provider response the store uses
type paymentResponseBody struct {
	ID              json.Number `json:"id"`
	Status          string      `json:"status"`
	StatusDetail    string      `json:"status_detail"`
	PaymentMethodID string      `json:"payment_method_id"`
	Installments    int         `json:"installments"`
}

type errorResponseBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
}

// ProcessPayment submits a tokenized card charge. A non-nil error means no
// verdict was obtained; provider rejections come back as a result with
// Status rejected and a nil error.
func (a *MercadoPagoAdapter) ProcessPayment(ctx context.Context, req payment.CardPaymentRequest) (*payment.CardPaymentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := paymentRequestBody{
		Token:             req.Token,
		TransactionAmount: req.Amount,
		Installments:      req.Installments,
		PaymentMethodID:   req.PaymentMethodID,
		IssuerID:          req.IssuerID,
		Description:       req.Description,
		Payer: paymentPayer{
			Email: req.Payer.Email,
		},
		Capture: true,
	}
	if req.Payer.Identification.Number != "" {
		body.Payer.Identification = &paymentIdentification{
			Type:   req.Payer.Identification.Type,
			Number: req.Payer.Identification.Number,
		}
	}
	if body.Installments <= 0 {
		body.Installments = 1
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+paymentsPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("mercadopago: failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.accessToken)
	// The provider dedupes charges on this key if the request is retried
	httpReq.Header.Set("X-Idempotency-Key", uuid.New().String())

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp errorResponseBody
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			a.logger.Warn("payment request refused by provider",
				zap.Int("status_code", resp.StatusCode),
				zap.String("message", errResp.Message))
			return nil, fmt.Errorf("%w: %s", payment.ErrGatewayRequestFailed, errResp.Message)
		}
		return nil, fmt.Errorf("%w: HTTP %d", payment.ErrGatewayRequestFailed, resp.StatusCode)
	}

	var parsed paymentResponseBody
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrInvalidResponse, err)
	}

	status := payment.Status(parsed.Status)
	if parsed.ID.String() == "" || !status.IsValid() {
		return nil, fmt.Errorf("%w: missing id or status", payment.ErrInvalidResponse)
	}

	a.logger.Info("card charge processed",
		zap.String("provider_payment_id", parsed.ID.String()),
		zap.String("status", parsed.Status),
		zap.String("status_detail", parsed.StatusDetail))

	return &payment.CardPaymentResult{
		ProviderPaymentID: parsed.ID.String(),
		Status:            status,
		StatusDetail:      parsed.StatusDetail,
		Method:            parsed.PaymentMethodID,
		Installments:      parsed.Installments,
		RawResponse:       string(respBody),
	}, nil
}

// Ensure MercadoPagoAdapter implements CardGateway
var _ payment.CardGateway = (*MercadoPagoAdapter)(nil)
