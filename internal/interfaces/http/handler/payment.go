package handler

import (
	"errors"
	"net/http"

	"github.com/busstore/backend/internal/domain/payment"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PaymentHandler relays standalone tokenized card charges to the provider.
// Checkout carries its own payment leg; this endpoint serves flows where the
// storefront charges without committing stock.
type PaymentHandler struct {
	BaseHandler
	gateway payment.CardGateway
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(gateway payment.CardGateway) *PaymentHandler {
	return &PaymentHandler{gateway: gateway}
}

// IdentificationRequest is the payer's tax document in a payment payload
type IdentificationRequest struct {
	Type   string `json:"type" binding:"required,oneof=CPF CNPJ"`
	Number string `json:"number" binding:"required,min=11,max=14"`
}

// ProcessPaymentRequest carries a tokenized card charge. The raw card
// number never reaches this backend.
type ProcessPaymentRequest struct {
	Token           string                `json:"token" binding:"required"`
	Amount          decimal.Decimal       `json:"amount" binding:"required"`
	PaymentMethodID string                `json:"payment_method_id" binding:"required"`
	Installments    int                   `json:"installments" binding:"omitempty,min=1,max=12"`
	Email           string                `json:"email" binding:"required,email"`
	Identification  IdentificationRequest `json:"identification" binding:"required"`
	Description     string                `json:"description" binding:"max=200"`
}

// ProcessPaymentResponse is the provider's verdict on a charge
type ProcessPaymentResponse struct {
	ProviderPaymentID string `json:"provider_payment_id"`
	Status            string `json:"status"`
	StatusDetail      string `json:"status_detail"`
	Message           string `json:"message,omitempty"`
}

// Process godoc
// @Summary      Relay a tokenized card payment
// @Description  Forwards the charge to the payment provider and returns its
// @Description  verdict. A rejected charge is a 200 with status rejected; a
// @Description  502 means the provider never answered.
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        request body ProcessPaymentRequest true "Tokenized charge"
// @Success      200 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Router       /payment/process [post]
func (h *PaymentHandler) Process(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	installments := req.Installments
	if installments == 0 {
		installments = 1
	}

	result, err := h.gateway.ProcessPayment(c.Request.Context(), payment.CardPaymentRequest{
		Token:           req.Token,
		Amount:          req.Amount,
		Currency:        "BRL",
		Installments:    installments,
		PaymentMethodID: req.PaymentMethodID,
		Description:     req.Description,
		Payer: payment.Payer{
			Email: req.Email,
			Identification: payment.Identification{
				Type:   req.Identification.Type,
				Number: req.Identification.Number,
			},
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidToken),
			errors.Is(err, payment.ErrInvalidAmount),
			errors.Is(err, payment.ErrInvalidPayerEmail),
			errors.Is(err, payment.ErrInvalidIdentification):
			h.BadRequest(c, err.Error())
		default:
			h.Error(c, http.StatusBadGateway, "PAYMENT_GATEWAY_UNAVAILABLE",
				"The payment provider did not answer. Try again.")
		}
		return
	}

	resp := ProcessPaymentResponse{
		ProviderPaymentID: result.ProviderPaymentID,
		Status:            result.Status.String(),
		StatusDetail:      result.StatusDetail,
	}
	if result.Status == payment.StatusRejected {
		resp.Message = payment.RejectionMessage(result.StatusDetail)
	}

	h.Success(c, resp)
}
