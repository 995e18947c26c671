package order

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/neoenginex/gemsutopia/internal/domain/order/handler"
	"github.com/neoenginex/gemsutopia/internal/domain/order/repository"
	"github.com/neoenginex/gemsutopia/internal/domain/order/service"
	"github.com/neoenginex/gemsutopia/internal/pkg/config"
	"github.com/neoenginex/gemsutopia/internal/pkg/middleware"
	"github.com/neoenginex/gemsutopia/internal/pkg/registry"
)

// Shared keys published for the payment module.
const (
	SharedServiceKey = "order.service"
	SharedMetricsKey = "order.metrics"
)

type OrderModule struct{}

func init() {
	registry.Register(&OrderModule{})
}

func (m *OrderModule) Name() string {
	return "order"
}

// Priority 20: runs after the pricing modules, before payment which
// consumes the order service.
func (m *OrderModule) Priority() int {
	return 20
}

func (m *OrderModule) Init(ctx *registry.ModuleContext) error {
	metrics, _ := ctx.Shared[SharedMetricsKey].(*middleware.Metrics)

	repo := repository.NewOrderRepository(ctx.DB)
	svc := service.NewOrderService(repo, classifierConfig(), metrics)
	h := handler.NewOrderHandler(svc)

	ctx.Shared[SharedServiceKey] = svc

	setupRoutes(ctx.Router, h)
	return nil
}

func classifierConfig() service.ClassifierConfig {
	cfg := config.GlobalConfig
	return service.ClassifierConfig{
		StripeTestMode: strings.HasPrefix(cfg.Stripe.SecretKey, "sk_test_"),
		PayPalLive:     cfg.PayPal.Live,
	}
}

func setupRoutes(r *gin.Engine, h *handler.OrderHandler) {
	adminLimiter := middleware.NewIPRateLimiter(5, 10)
	admin := r.Group("/api/admin/orders")
	admin.Use(middleware.RequireAdmin(), middleware.RateLimit(adminLimiter))
	{
		admin.GET("", h.List)
		admin.DELETE("/:id", h.Delete)
	}
}
