package handler

import (
	postalapp "github.com/busstore/backend/internal/application/postal"
	"github.com/gin-gonic/gin"
)

// PostalHandler handles CEP address autofill
type PostalHandler struct {
	BaseHandler
	addressService *postalapp.AddressService
}

// NewPostalHandler creates a new PostalHandler
func NewPostalHandler(addressService *postalapp.AddressService) *PostalHandler {
	return &PostalHandler{addressService: addressService}
}

// ResolveCEP godoc
// @Summary      Resolve a CEP to its registered address
// @Description  Looks up the Brazilian postal code and returns the street,
// @Description  district, city and state for address autofill.
// @Tags         postal
// @Produce      json
// @Param        cep path string true "CEP, with or without the dash"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /postal/cep/{cep} [get]
func (h *PostalHandler) ResolveCEP(c *gin.Context) {
	address, err := h.addressService.Resolve(c.Request.Context(), c.Param("cep"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, address)
}
