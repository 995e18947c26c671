package tax

import (
	"github.com/gin-gonic/gin"

	"github.com/neoenginex/gemsutopia/internal/domain/tax/handler"
	"github.com/neoenginex/gemsutopia/internal/domain/tax/service"
	"github.com/neoenginex/gemsutopia/internal/pkg/config"
	"github.com/neoenginex/gemsutopia/internal/pkg/registry"
)

// SharedServiceKey exposes the tax service to the payment module for
// server-side total recomputation.
const SharedServiceKey = "tax.service"

type TaxModule struct{}

func init() {
	registry.Register(&TaxModule{})
}

func (m *TaxModule) Name() string {
	return "tax"
}

func (m *TaxModule) Priority() int {
	return 10
}

func (m *TaxModule) Init(ctx *registry.ModuleContext) error {
	cfg := config.GlobalConfig.Tax
	svc := service.NewTaxService(cfg.LookupURL, cfg.APIKey)
	h := handler.NewTaxHandler(svc)

	ctx.Shared[SharedServiceKey] = svc

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.TaxHandler) {
	r.Group("/api").POST("/tax-calculation", h.Calculate)
}
