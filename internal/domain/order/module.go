package order

import (
	couponRepo "bbq_ordering/internal/domain/coupon/repository"
	"bbq_ordering/internal/domain/order/handler"
	"bbq_ordering/internal/domain/order/repository"
	"bbq_ordering/internal/domain/order/service"
	productRepo "bbq_ordering/internal/domain/product/repository"
	"bbq_ordering/internal/pkg/middleware"
	"bbq_ordering/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// OrderModule 订单模块
type OrderModule struct{}

func init() {
	registry.Register(&OrderModule{})
}

func (m *OrderModule) Name() string {
	return "order"
}

func (m *OrderModule) Priority() int {
	// 依赖商品和优惠券模块的表结构，最后初始化
	return 20
}

func (m *OrderModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	oRepo := repository.NewOrderRepository(ctx.DB)
	oService := service.NewOrderService(
		ctx.DB,
		oRepo,
		productRepo.NewInventoryRepository(),
		productRepo.NewProductRepository(ctx.DB),
		couponRepo.NewCouponRepository(ctx.DB),
		ctx.Notifier,
	)
	oHandler := handler.NewOrderHandler(oService)

	// 2. 路由注册
	setupRoutes(ctx.Router, oHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.OrderHandler) {
	g := r.Group("/orders")
	g.Use(middleware.AuthMiddleware())
	{
		g.POST("", h.Create)
		g.POST("/preview", h.Preview)
		g.GET("/mine", h.ListMine)
		g.GET("/:id", h.Get)
		g.POST("/:id/cancel", h.Cancel)

		// 商家管理
		business := g.Group("")
		business.Use(middleware.BusinessMiddleware())
		{
			business.GET("", h.List)
			business.PATCH("/:id/status", h.UpdateStatus)
		}
	}
}
