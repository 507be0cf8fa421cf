package handler

import (
	tradeapp "github.com/busstore/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles the storefront purchase flow
type CheckoutHandler struct {
	BaseHandler
	checkoutService *tradeapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *tradeapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CheckStock godoc
// @Summary      Check cart availability
// @Description  Read-only pre-check of every cart line. Nothing is reserved;
// @Description  stock is only committed after a successful payment.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body trade.CheckStockRequest true "Cart lines"
// @Success      200 {object} dto.Response
// @Router       /checkout/check-stock [post]
func (h *CheckoutHandler) CheckStock(c *gin.Context) {
	var req tradeapp.CheckStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.checkoutService.CheckStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Checkout godoc
// @Summary      Process a purchase
// @Description  Relays the tokenized card payment to the provider and, on
// @Description  approval, commits stock and records the sale. The response
// @Description  outcome is one of submitted, cancelled or error.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body trade.CheckoutRequest true "Cart and payment payload"
// @Success      200 {object} dto.Response
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req tradeapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
