package handler

import (
	"net/http"
	"testing"

	"github.com/busstore/backend/internal/domain/payment"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newPaymentRouter(gateway payment.CardGateway) *gin.Engine {
	h := NewPaymentHandler(gateway)
	router := gin.New()
	router.POST("/payment/process", h.Process)
	return router
}

func paymentPayload() gin.H {
	return gin.H{
		"token":             "card-token-abc",
		"amount":            "89.90",
		"payment_method_id": "visa",
		"installments":      1,
		"email":             "ana@example.com",
		"identification":    gin.H{"type": "CPF", "number": "12345678901"},
	}
}

func TestProcessPaymentApproved(t *testing.T) {
	gateway := &stubGateway{result: &payment.CardPaymentResult{
		ProviderPaymentID: "mp-700",
		Status:            payment.StatusApproved,
		StatusDetail:      "accredited",
		Method:            "visa",
		Installments:      1,
	}}

	w := performJSON(newPaymentRouter(gateway), http.MethodPost, "/payment/process", paymentPayload())

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"status":"approved"`)
	assert.Contains(t, body, "mp-700")
}

func TestProcessPaymentRejectedCarriesMessage(t *testing.T) {
	gateway := &stubGateway{result: &payment.CardPaymentResult{
		ProviderPaymentID: "mp-701",
		Status:            payment.StatusRejected,
		StatusDetail:      "cc_rejected_insufficient_amount",
	}}

	w := performJSON(newPaymentRouter(gateway), http.MethodPost, "/payment/process", paymentPayload())

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"status":"rejected"`)
	assert.Contains(t, body, "insufficient funds")
}

func TestProcessPaymentProviderOutageIs502(t *testing.T) {
	gateway := &stubGateway{err: payment.ErrGatewayUnavailable}

	w := performJSON(newPaymentRouter(gateway), http.MethodPost, "/payment/process", paymentPayload())

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "PAYMENT_GATEWAY_UNAVAILABLE")
}

func TestProcessPaymentMissingTokenIs400(t *testing.T) {
	payload := paymentPayload()
	delete(payload, "token")

	w := performJSON(newPaymentRouter(&stubGateway{}), http.MethodPost, "/payment/process", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
