package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/neoenginex/gemsutopia/internal/domain/catalog/handler"
	"github.com/neoenginex/gemsutopia/internal/domain/catalog/repository"
	"github.com/neoenginex/gemsutopia/internal/domain/catalog/service"
	"github.com/neoenginex/gemsutopia/internal/pkg/middleware"
	"github.com/neoenginex/gemsutopia/internal/pkg/registry"
)

type CatalogModule struct{}

func init() {
	registry.Register(&CatalogModule{})
}

func (m *CatalogModule) Name() string {
	return "catalog"
}

func (m *CatalogModule) Priority() int {
	return 10
}

func (m *CatalogModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewProductRepository(ctx.DB)
	svc := service.NewCatalogService(repo)
	h := handler.NewCatalogHandler(svc)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CatalogHandler) {
	api := r.Group("/api")
	{
		api.GET("/products", h.List)
		api.GET("/products/:id", h.Get)
	}

	adminLimiter := middleware.NewIPRateLimiter(5, 10)
	admin := api.Group("/admin/products")
	admin.Use(middleware.RequireAdmin(), middleware.RateLimit(adminLimiter))
	{
		admin.GET("", h.ListAdmin)
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}
