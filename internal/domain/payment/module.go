package payment

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/neoenginex/gemsutopia/internal/domain/discount"
	discountService "github.com/neoenginex/gemsutopia/internal/domain/discount/service"
	"github.com/neoenginex/gemsutopia/internal/domain/order"
	orderService "github.com/neoenginex/gemsutopia/internal/domain/order/service"
	"github.com/neoenginex/gemsutopia/internal/domain/payment/handler"
	"github.com/neoenginex/gemsutopia/internal/domain/payment/service"
	"github.com/neoenginex/gemsutopia/internal/domain/payment/strategy"
	"github.com/neoenginex/gemsutopia/internal/domain/shipping"
	shippingService "github.com/neoenginex/gemsutopia/internal/domain/shipping/service"
	"github.com/neoenginex/gemsutopia/internal/domain/tax"
	taxService "github.com/neoenginex/gemsutopia/internal/domain/tax/service"
	"github.com/neoenginex/gemsutopia/internal/pkg/config"
	"github.com/neoenginex/gemsutopia/internal/pkg/currency"
	"github.com/neoenginex/gemsutopia/internal/pkg/registry"
)

type PaymentModule struct{}

func init() {
	registry.Register(&PaymentModule{})
}

func (m *PaymentModule) Name() string {
	return "payment"
}

// Priority 30: consumes the services published by the pricing and order
// modules.
func (m *PaymentModule) Priority() int {
	return 30
}

func (m *PaymentModule) Init(ctx *registry.ModuleContext) error {
	orders, ok := ctx.Shared[order.SharedServiceKey].(orderService.OrderService)
	if !ok {
		return fmt.Errorf("payment module requires the order service")
	}
	discounts, ok := ctx.Shared[discount.SharedServiceKey].(discountService.DiscountService)
	if !ok {
		return fmt.Errorf("payment module requires the discount service")
	}
	shippingSvc, ok := ctx.Shared[shipping.SharedServiceKey].(shippingService.ShippingService)
	if !ok {
		return fmt.Errorf("payment module requires the shipping service")
	}
	taxSvc, ok := ctx.Shared[tax.SharedServiceKey].(taxService.TaxService)
	if !ok {
		return fmt.Errorf("payment module requires the tax service")
	}

	converter := currency.NewConverter(config.GlobalConfig.Currency.RateURL, ctx.Redis)

	paypalStrategy, err := strategy.NewPayPalStrategy()
	if err != nil {
		return fmt.Errorf("paypal strategy: %w", err)
	}
	coinbaseStrategy := strategy.NewCoinbaseStrategy()

	svc := service.NewPaymentService(orders, discounts, shippingSvc, taxSvc, converter, paypalStrategy, coinbaseStrategy)
	svc.RegisterWebhookStrategy(strategy.NewStripeStrategy())
	svc.RegisterWebhookStrategy(coinbaseStrategy)

	h := handler.NewPaymentHandler(svc)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PaymentHandler) {
	api := r.Group("/api")
	{
		api.POST("/webhooks/stripe", h.StripeWebhook)
		api.POST("/webhooks/coinbase", h.CoinbaseWebhook)
		api.POST("/paypal/capture-order", h.CapturePayPalOrder)
		api.POST("/coinbase/create-charge", h.CreateCoinbaseCharge)
		api.GET("/coinbase/check-payment/:chargeId", h.CheckCoinbasePayment)
	}
}
