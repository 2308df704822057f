package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "bbq_ordering/internal/domain/coupon"
	_ "bbq_ordering/internal/domain/order"
	_ "bbq_ordering/internal/domain/product"
	_ "bbq_ordering/internal/domain/purchase"
	_ "bbq_ordering/internal/domain/user"
	"bbq_ordering/internal/pkg/config"
	"bbq_ordering/internal/pkg/middleware"
	"bbq_ordering/internal/pkg/notify"
	"bbq_ordering/internal/pkg/registry"
	"bbq_ordering/pkg/database"
	"bbq_ordering/pkg/logger"
	"bbq_ordering/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger.Init(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	db := database.InitDatabase()
	rdb := database.InitRedis()

	// 订单事件经 redis 广播给推送网关
	notifyCfg := config.GlobalConfig.Notify
	dispatcher := notify.NewDispatcher(
		notify.NewRedisPublisher(rdb, notifyCfg.Channel),
		notifyCfg.Workers,
		notifyCfg.QueueSize,
	)
	dispatcher.Start()
	defer dispatcher.Stop()

	gin.SetMode(config.GlobalConfig.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.TraceMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	moduleCtx := &registry.ModuleContext{
		DB:       db,
		Redis:    rdb,
		Router:   router,
		Notifier: dispatcher,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("module initialization failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + config.GlobalConfig.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("port", config.GlobalConfig.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	// 优雅退出：先停收请求，再停事件投递
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("server shutdown", zap.Error(err))
	}
}
