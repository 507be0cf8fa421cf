package handler

import (
	catalogapp "github.com/busstore/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles catalog API endpoints, both the admin CRUD
// surface and the public storefront views.
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @Summary      Create a product
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalog.CreateProductRequest true "Product payload"
// @Success      201 {object} dto.Response
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update godoc
// @Summary      Update a product
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Param        request body catalog.UpdateProductRequest true "Fields to update"
// @Success      200 {object} dto.Response
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Get godoc
// @Summary      Get a product (admin view with stock counts)
// @Tags         admin-products
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response
// @Router       /admin/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List godoc
// @Summary      List products (admin view)
// @Tags         admin-products
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response
// @Router       /admin/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	page, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListLowStock godoc
// @Summary      List products below their minimum stock
// @Tags         admin-products
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response
// @Router       /admin/products/low-stock [get]
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	products, err := h.productService.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// AddVariation godoc
// @Summary      Add a color/size variation
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response
// @Router       /admin/products/{id}/variations [post]
func (h *ProductHandler) AddVariation(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req catalogapp.AddVariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.productService.AddVariation(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// RemoveVariation godoc
// @Summary      Remove a color/size variation
// @Tags         admin-products
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Param        color query string true "Variation color"
// @Param        size query string true "Variation size"
// @Success      200 {object} dto.Response
// @Router       /admin/products/{id}/variations [delete]
func (h *ProductHandler) RemoveVariation(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	color := c.Query("color")
	size := c.Query("size")
	if color == "" || size == "" {
		h.BadRequest(c, "color and size query parameters are required")
		return
	}

	product, err := h.productService.RemoveVariation(c.Request.Context(), id, color, size)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Restock godoc
// @Summary      Add stock to a variation
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response
// @Router       /admin/products/{id}/restock [post]
func (h *ProductHandler) Restock(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req catalogapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.productService.Restock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Activate godoc
// @Summary      Make a product visible on the storefront
// @Tags         admin-products
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      204
// @Router       /admin/products/{id}/activate [post]
func (h *ProductHandler) Activate(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.productService.Activate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate godoc
// @Summary      Hide a product from the storefront
// @Tags         admin-products
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      204
// @Router       /admin/products/{id}/deactivate [post]
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.productService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete godoc
// @Summary      Delete a product
// @Tags         admin-products
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      204
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListStorefront godoc
// @Summary      List active products (public catalog)
// @Tags         storefront
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /products [get]
func (h *ProductHandler) ListStorefront(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	page, err := h.productService.ListStorefront(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetStorefront godoc
// @Summary      Get a product (public view, no cost price or stock counts)
// @Tags         storefront
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response
// @Router       /products/{id} [get]
func (h *ProductHandler) GetStorefront(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.GetStorefront(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}
