package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/neoenginex/gemsutopia/internal/domain/tax/service"
	"github.com/neoenginex/gemsutopia/pkg/response"
)

type TaxHandler struct {
	service service.TaxService
}

func NewTaxHandler(service service.TaxService) *TaxHandler {
	return &TaxHandler{service: service}
}

type calculateInput struct {
	Subtotal float64 `json:"subtotal" binding:"min=0"`
	Country  string  `json:"country" binding:"required"`
	State    string  `json:"state"`
	City     string  `json:"city"`
	ZipCode  string  `json:"zipCode"`
	Address  string  `json:"address"`
}

// Calculate quotes tax for a checkout subtotal.
func (h *TaxHandler) Calculate(c *gin.Context) {
	var input calculateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	rate, amount := h.service.Calculate(c.Request.Context(), decimal.NewFromFloat(input.Subtotal), service.Request{
		Country:    input.Country,
		Region:     input.State,
		City:       input.City,
		PostalCode: input.ZipCode,
		Address:    input.Address,
	})

	response.Success(c, gin.H{"amount": amount, "rate": rate})
}
