package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/neoenginex/gemsutopia/internal/pkg/config"
	"github.com/neoenginex/gemsutopia/internal/pkg/middleware"
	"github.com/neoenginex/gemsutopia/internal/pkg/registry"
	"github.com/neoenginex/gemsutopia/pkg/database"
	"github.com/neoenginex/gemsutopia/pkg/logger"

	// Modules register themselves at import time.
	_ "github.com/neoenginex/gemsutopia/internal/domain/auth"
	_ "github.com/neoenginex/gemsutopia/internal/domain/catalog"
	_ "github.com/neoenginex/gemsutopia/internal/domain/discount"
	"github.com/neoenginex/gemsutopia/internal/domain/order"
	_ "github.com/neoenginex/gemsutopia/internal/domain/payment"
	_ "github.com/neoenginex/gemsutopia/internal/domain/shipping"
	_ "github.com/neoenginex/gemsutopia/internal/domain/tax"
)

func main() {
	config.LoadConfig()

	if err := logger.Init(config.GlobalConfig.App.Debug); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := database.InitDatabase()
	rdb := database.InitRedis()

	gin.SetMode(config.GlobalConfig.Server.Mode)
	router := gin.New()

	metrics := middleware.NewMetrics()
	publicLimiter := middleware.NewIPRateLimiter(100, 200)

	router.Use(
		gin.Recovery(),
		middleware.Trace(),
		middleware.Logger(),
		middleware.CORS(),
		metrics.Handler(),
		middleware.RateLimit(publicLimiter),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	moduleCtx := &registry.ModuleContext{
		DB:     db,
		Redis:  rdb,
		Router: router,
		Shared: map[string]interface{}{
			order.SharedMetricsKey: metrics,
		},
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("module initialization failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + config.GlobalConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}
}
