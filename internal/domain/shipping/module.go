package shipping

import (
	"github.com/gin-gonic/gin"

	"github.com/neoenginex/gemsutopia/internal/domain/shipping/handler"
	"github.com/neoenginex/gemsutopia/internal/domain/shipping/repository"
	"github.com/neoenginex/gemsutopia/internal/domain/shipping/service"
	"github.com/neoenginex/gemsutopia/internal/pkg/middleware"
	"github.com/neoenginex/gemsutopia/internal/pkg/registry"
)

// SharedServiceKey lets the payment module reuse the shipping service when
// recomputing totals server-side.
const SharedServiceKey = "shipping.service"

type ShippingModule struct{}

func init() {
	registry.Register(&ShippingModule{})
}

func (m *ShippingModule) Name() string {
	return "shipping"
}

func (m *ShippingModule) Priority() int {
	return 10
}

func (m *ShippingModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewSettingRepository(ctx.DB)
	svc := service.NewShippingService(repo, ctx.Redis)
	h := handler.NewShippingHandler(svc)

	ctx.Shared[SharedServiceKey] = svc

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ShippingHandler) {
	api := r.Group("/api")
	{
		api.GET("/shipping-settings", h.GetSettings)
		api.GET("/shipping-quote", h.QuoteCart)
	}

	adminLimiter := middleware.NewIPRateLimiter(5, 10)
	admin := api.Group("")
	admin.Use(middleware.RequireAdmin(), middleware.RateLimit(adminLimiter))
	{
		admin.PUT("/shipping-settings", h.UpdateSettings)
	}
}
