package handler

import (
	tradeapp "github.com/busstore/backend/internal/application/trade"
	"github.com/busstore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// SaleHandler exposes the sale ledger: admin fulfillment operations and
// the buyer's own order history.
type SaleHandler struct {
	BaseHandler
	saleService *tradeapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *tradeapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List godoc
// @Summary      List sales
// @Tags         admin-sales
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response
// @Router       /admin/sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter tradeapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	page, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @Summary      Get a sale
// @Tags         admin-sales
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sale ID"
// @Success      200 {object} dto.Response
// @Router       /admin/sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	sale, err := h.saleService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// GetByNumber godoc
// @Summary      Get a sale by its sale number
// @Tags         admin-sales
// @Produce      json
// @Security     BearerAuth
// @Param        number path string true "Sale number"
// @Success      200 {object} dto.Response
// @Router       /admin/sales/number/{number} [get]
func (h *SaleHandler) GetByNumber(c *gin.Context) {
	sale, err := h.saleService.GetBySaleNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// Summary godoc
// @Summary      Revenue summary for the dashboard
// @Tags         admin-sales
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response
// @Router       /admin/sales/summary [get]
func (h *SaleHandler) Summary(c *gin.Context) {
	summary, err := h.saleService.RevenueSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// MarkShipped godoc
// @Summary      Mark a sale as shipped
// @Tags         admin-sales
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sale ID"
// @Success      200 {object} dto.Response
// @Router       /admin/sales/{id}/ship [post]
func (h *SaleHandler) MarkShipped(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	sale, err := h.saleService.MarkShipped(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// MarkDelivered godoc
// @Summary      Mark a sale as delivered
// @Tags         admin-sales
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sale ID"
// @Success      200 {object} dto.Response
// @Router       /admin/sales/{id}/deliver [post]
func (h *SaleHandler) MarkDelivered(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	sale, err := h.saleService.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// Cancel godoc
// @Summary      Cancel a sale's fulfillment
// @Tags         admin-sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sale ID"
// @Param        request body trade.CancelSaleRequest true "Cancel reason"
// @Success      200 {object} dto.Response
// @Router       /admin/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req tradeapp.CancelSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	sale, err := h.saleService.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// ListMine godoc
// @Summary      List the authenticated buyer's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response
// @Router       /orders [get]
func (h *SaleHandler) ListMine(c *gin.Context) {
	email := middleware.GetJWTEmail(c)
	if email == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter tradeapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	page, err := h.saleService.ListForBuyer(c.Request.Context(), email, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetMine godoc
// @Summary      Get one of the authenticated buyer's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sale ID"
// @Success      200 {object} dto.Response
// @Router       /orders/{id} [get]
func (h *SaleHandler) GetMine(c *gin.Context) {
	email := middleware.GetJWTEmail(c)
	if email == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	sale, err := h.saleService.GetForBuyer(c.Request.Context(), id, email)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}
