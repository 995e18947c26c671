package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neoenginex/gemsutopia/internal/domain/discount/model"
	"github.com/neoenginex/gemsutopia/internal/domain/discount/service"
	"github.com/neoenginex/gemsutopia/pkg/response"
	"github.com/neoenginex/gemsutopia/pkg/utils"
)

type DiscountHandler struct {
	service service.DiscountService
}

func NewDiscountHandler(service service.DiscountService) *DiscountHandler {
	return &DiscountHandler{service: service}
}

type validateInput struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"min=0"`
}

// Validate checks a code during checkout. Rejections come back as business
// failures (HTTP 200) so the storefront can show the message inline.
func (h *DiscountHandler) Validate(c *gin.Context) {
	var input validateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	result, err := h.service.Validate(input.Code, decimal.NewFromFloat(input.Subtotal))
	if err != nil {
		var minErr *service.MinimumOrderError
		switch {
		case errors.Is(err, service.ErrCodeNotFound):
			response.Fail(c, response.ErrDiscountInvalid, err.Error())
		case errors.Is(err, service.ErrCodeExpired):
			response.Fail(c, response.ErrDiscountExpired, err.Error())
		case errors.Is(err, service.ErrCodeExhausted):
			response.Fail(c, response.ErrDiscountExhausted, err.Error())
		case errors.As(err, &minErr):
			response.Fail(c, response.ErrDiscountMinimum, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}

	response.Success(c, result)
}

type codeInput struct {
	Code          string     `json:"code" binding:"required"`
	DiscountType  string     `json:"discount_type" binding:"required,oneof=percentage fixed_amount"`
	DiscountValue float64    `json:"discount_value" binding:"required,gt=0"`
	FreeShipping  bool       `json:"free_shipping"`
	MinimumOrder  float64    `json:"minimum_order" binding:"min=0"`
	UsageLimit    *int       `json:"usage_limit" binding:"omitempty,min=1"`
	IsActive      *bool      `json:"is_active"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

func (in codeInput) toModel() *model.DiscountCode {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return &model.DiscountCode{
		Code:          in.Code,
		DiscountType:  in.DiscountType,
		DiscountValue: decimal.NewFromFloat(in.DiscountValue),
		FreeShipping:  in.FreeShipping,
		MinimumOrder:  decimal.NewFromFloat(in.MinimumOrder),
		UsageLimit:    in.UsageLimit,
		IsActive:      active,
		ExpiresAt:     in.ExpiresAt,
	}
}

func (h *DiscountHandler) Create(c *gin.Context) {
	var input codeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	code := input.toModel()
	if err := h.service.CreateCode(code); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, code)
}

func (h *DiscountHandler) List(c *gin.Context) {
	page, pageSize := utils.Pagination(c)
	codes, total, err := h.service.GetCodes((page-1)*pageSize, pageSize)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"items": codes, "total": total, "page": page, "pageSize": pageSize})
}

func (h *DiscountHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var input codeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	code := input.toModel()
	code.ID = id
	if err := h.service.UpdateCode(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrDiscountInvalid, "Discount code not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, code)
}

func (h *DiscountHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteCode(c.Param("id")); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "Discount code deleted")
}
