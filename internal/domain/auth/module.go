package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/neoenginex/gemsutopia/internal/domain/auth/handler"
	"github.com/neoenginex/gemsutopia/internal/pkg/middleware"
	"github.com/neoenginex/gemsutopia/internal/pkg/registry"
)

type AuthModule struct{}

func init() {
	registry.Register(&AuthModule{})
}

func (m *AuthModule) Name() string {
	return "auth"
}

func (m *AuthModule) Priority() int {
	return 1
}

func (m *AuthModule) Init(ctx *registry.ModuleContext) error {
	h := handler.NewAuthHandler()
	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.AuthHandler) {
	loginLimiter := middleware.NewIPRateLimiter(1, 5)

	g := r.Group("/api/auth")
	g.Use(middleware.RateLimit(loginLimiter))
	{
		g.POST("/login", h.Login)
		g.POST("/logout", h.Logout)
	}
}
