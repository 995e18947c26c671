package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/neoenginex/gemsutopia/internal/domain/shipping/model"
	"github.com/neoenginex/gemsutopia/internal/domain/shipping/service"
	"github.com/neoenginex/gemsutopia/internal/pkg/currency"
	"github.com/neoenginex/gemsutopia/pkg/response"
)

type ShippingHandler struct {
	service service.ShippingService
}

func NewShippingHandler(service service.ShippingService) *ShippingHandler {
	return &ShippingHandler{service: service}
}

// GetSettings returns the current shipping configuration.
func (h *ShippingHandler) GetSettings(c *gin.Context) {
	settings, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, settings)
}

type updateSettingsInput struct {
	EnableShipping        *bool    `json:"enableShipping"`
	InternationalShipping *bool    `json:"internationalShipping"`
	SingleItemCAD         *float64 `json:"singleItemShippingCAD" binding:"omitempty,min=0"`
	SingleItemUSD         *float64 `json:"singleItemShippingUSD" binding:"omitempty,min=0"`
	CombinedCAD           *float64 `json:"combinedShippingCAD" binding:"omitempty,min=0"`
	CombinedUSD           *float64 `json:"combinedShippingUSD" binding:"omitempty,min=0"`
	CombinedEnabled       *bool    `json:"combinedShippingEnabled"`
	CombinedThreshold     *int     `json:"combinedShippingThreshold" binding:"omitempty,min=2"`
}

// UpdateSettings applies a partial update over the stored settings.
func (h *ShippingHandler) UpdateSettings(c *gin.Context) {
	var input updateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	settings, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	applySettingsPatch(&settings, input)

	if err := h.service.SaveSettings(c.Request.Context(), settings); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, settings)
}

func applySettingsPatch(s *model.Settings, in updateSettingsInput) {
	if in.EnableShipping != nil {
		s.EnableShipping = *in.EnableShipping
	}
	if in.InternationalShipping != nil {
		s.InternationalShipping = *in.InternationalShipping
	}
	if in.SingleItemCAD != nil {
		s.SingleItemCAD = decimal.NewFromFloat(*in.SingleItemCAD)
	}
	if in.SingleItemUSD != nil {
		s.SingleItemUSD = decimal.NewFromFloat(*in.SingleItemUSD)
	}
	if in.CombinedCAD != nil {
		s.CombinedCAD = decimal.NewFromFloat(*in.CombinedCAD)
	}
	if in.CombinedUSD != nil {
		s.CombinedUSD = decimal.NewFromFloat(*in.CombinedUSD)
	}
	if in.CombinedEnabled != nil {
		s.CombinedEnabled = *in.CombinedEnabled
	}
	if in.CombinedThreshold != nil {
		s.CombinedThreshold = *in.CombinedThreshold
	}
}

type quoteInput struct {
	ItemCount int    `form:"itemCount" binding:"min=0"`
	Currency  string `form:"currency"`
}

// QuoteCart prices shipping for a cart size; used by the storefront while
// the customer edits the cart.
func (h *ShippingHandler) QuoteCart(c *gin.Context) {
	var input quoteInput
	if err := c.ShouldBindQuery(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	quote, err := h.service.QuoteCart(c.Request.Context(), input.ItemCount, currency.Normalize(input.Currency))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, quote)
}
