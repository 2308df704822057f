package coupon

import (
	"bbq_ordering/internal/domain/coupon/handler"
	"bbq_ordering/internal/domain/coupon/repository"
	"bbq_ordering/internal/domain/coupon/service"
	"bbq_ordering/internal/pkg/middleware"
	"bbq_ordering/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CouponModule 优惠券模块
type CouponModule struct{}

func init() {
	registry.Register(&CouponModule{})
}

func (m *CouponModule) Name() string {
	return "coupon"
}

func (m *CouponModule) Priority() int {
	return 10
}

func (m *CouponModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	cRepo := repository.NewCouponRepository(ctx.DB)
	cService := service.NewCouponService(cRepo)
	cHandler := handler.NewCouponHandler(cService)

	// 2. 路由注册
	setupRoutes(ctx.Router, cHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CouponHandler) {
	g := r.Group("/coupons")
	g.Use(middleware.AuthMiddleware())
	{
		// 抽奖转盘
		g.GET("/drawable", h.Drawable)
		g.POST("/draw", h.Draw)
		g.GET("/mine", h.Mine)

		// 商家管理
		business := g.Group("")
		business.Use(middleware.BusinessMiddleware())
		{
			business.GET("", h.List)
			business.POST("", h.Create)
			business.PUT("/:id", h.Update)
			business.DELETE("/:id", h.Remove)
		}
	}
}
