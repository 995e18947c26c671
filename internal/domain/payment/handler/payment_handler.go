package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	discountService "github.com/neoenginex/gemsutopia/internal/domain/discount/service"
	orderModel "github.com/neoenginex/gemsutopia/internal/domain/order/model"
	"github.com/neoenginex/gemsutopia/internal/domain/payment/service"
	"github.com/neoenginex/gemsutopia/internal/domain/payment/strategy"
	"github.com/neoenginex/gemsutopia/internal/pkg/currency"
	"github.com/neoenginex/gemsutopia/pkg/response"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(service service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// StripeWebhook handles payment_intent events. Signature failures are 400
// so Stripe registers the delivery as failed; everything else is 200.
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	h.webhook(c, orderModel.MethodStripe)
}

// CoinbaseWebhook handles charge:confirmed / charge:failed events.
func (h *PaymentHandler) CoinbaseWebhook(c *gin.Context) {
	h.webhook(c, orderModel.MethodCrypto)
}

func (h *PaymentHandler) webhook(c *gin.Context, channel string) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "unreadable body")
		return
	}

	if err := h.service.HandleWebhook(channel, body, c.Request.Header); err != nil {
		if errors.Is(err, strategy.ErrBadSignature) {
			response.Error(c, http.StatusUnauthorized, response.ErrSignatureInvalid, "signature verification failed")
			return
		}
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	response.Success(c, gin.H{"received": true})
}

type itemInput struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
}

func toOrderItems(in []itemInput) []orderModel.OrderItem {
	items := make([]orderModel.OrderItem, 0, len(in))
	for _, it := range in {
		items = append(items, orderModel.OrderItem{
			Name:     it.Name,
			Price:    decimal.NewFromFloat(it.Price),
			Quantity: it.Quantity,
		})
	}
	return items
}

type captureOrderInput struct {
	OrderID string `json:"orderID" binding:"required"`
	Details struct {
		CaptureID string `json:"captureID"`
	} `json:"details"`
	CustomerInfo service.CustomerInfo `json:"customerInfo" binding:"required"`
	Items        []itemInput          `json:"items" binding:"required,min=1,dive"`
	Currency     string               `json:"currency"`
	DiscountCode string               `json:"discountCode"`
}

// CapturePayPalOrder records a PayPal payment after client-side capture,
// recomputing the totals server-side from the item list.
func (h *PaymentHandler) CapturePayPalOrder(c *gin.Context) {
	var input captureOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	order, err := h.service.CapturePayPalOrder(c.Request.Context(), service.CaptureOrderInput{
		OrderID:      input.OrderID,
		CaptureID:    input.Details.CaptureID,
		CustomerInfo: input.CustomerInfo,
		Items:        toOrderItems(input.Items),
		Currency:     currency.Normalize(input.Currency),
		DiscountCode: input.DiscountCode,
	})
	if err != nil {
		if isDiscountRejection(err) {
			response.Fail(c, response.ErrDiscountInvalid, err.Error())
			return
		}
		if errors.Is(err, strategy.ErrCaptureNotCompleted) {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "payment failed, try again")
		return
	}
	response.Success(c, order)
}

type createChargeInput struct {
	CustomerInfo service.CustomerInfo `json:"customerInfo" binding:"required"`
	Items        []itemInput          `json:"items" binding:"required,min=1,dive"`
	Currency     string               `json:"currency"`
	DiscountCode string               `json:"discountCode"`
}

// CreateCoinbaseCharge opens a hosted crypto payment page.
func (h *PaymentHandler) CreateCoinbaseCharge(c *gin.Context) {
	var input createChargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	charge, err := h.service.CreateCoinbaseCharge(c.Request.Context(), service.ChargeInput{
		CustomerInfo: input.CustomerInfo,
		Items:        toOrderItems(input.Items),
		Currency:     currency.Normalize(input.Currency),
		DiscountCode: input.DiscountCode,
	})
	if err != nil {
		if isDiscountRejection(err) {
			response.Fail(c, response.ErrDiscountInvalid, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrChargeCreateFailed, "could not create charge")
		return
	}

	response.Success(c, gin.H{
		"id":         charge.ID,
		"hosted_url": charge.HostedURL,
		"expires_at": charge.ExpiresAt,
		"pricing":    charge.Pricing,
	})
}

// CheckCoinbasePayment is polled by the client after redirect; a COMPLETED
// charge is recorded before the status is returned.
func (h *PaymentHandler) CheckCoinbasePayment(c *gin.Context) {
	status, err := h.service.CheckCoinbasePayment(c.Request.Context(), c.Param("chargeId"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "could not check payment")
		return
	}
	response.Success(c, gin.H{"status": status})
}

func isDiscountRejection(err error) bool {
	var minErr *discountService.MinimumOrderError
	return errors.Is(err, discountService.ErrCodeNotFound) ||
		errors.Is(err, discountService.ErrCodeExpired) ||
		errors.Is(err, discountService.ErrCodeExhausted) ||
		errors.As(err, &minErr)
}
