package discount

import (
	"github.com/gin-gonic/gin"

	"github.com/neoenginex/gemsutopia/internal/domain/discount/handler"
	"github.com/neoenginex/gemsutopia/internal/domain/discount/repository"
	"github.com/neoenginex/gemsutopia/internal/domain/discount/service"
	"github.com/neoenginex/gemsutopia/internal/pkg/middleware"
	"github.com/neoenginex/gemsutopia/internal/pkg/registry"
)

// SharedServiceKey exposes the discount service to the payment module so
// checkout can validate and redeem codes.
const SharedServiceKey = "discount.service"

type DiscountModule struct{}

func init() {
	registry.Register(&DiscountModule{})
}

func (m *DiscountModule) Name() string {
	return "discount"
}

func (m *DiscountModule) Priority() int {
	return 10
}

func (m *DiscountModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewDiscountRepository(ctx.DB)
	svc := service.NewDiscountService(repo)
	h := handler.NewDiscountHandler(svc)

	ctx.Shared[SharedServiceKey] = svc

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.DiscountHandler) {
	api := r.Group("/api")
	{
		api.POST("/discount-codes/validate", h.Validate)
	}

	adminLimiter := middleware.NewIPRateLimiter(5, 10)
	admin := api.Group("/admin/discount-codes")
	admin.Use(middleware.RequireAdmin(), middleware.RateLimit(adminLimiter))
	{
		admin.POST("", h.Create)
		admin.GET("", h.List)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}
