package product

import (
	"bbq_ordering/internal/domain/product/handler"
	"bbq_ordering/internal/domain/product/repository"
	"bbq_ordering/internal/domain/product/service"
	"bbq_ordering/internal/pkg/middleware"
	"bbq_ordering/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// ProductModule 商品模块
type ProductModule struct{}

func init() {
	registry.Register(&ProductModule{})
}

func (m *ProductModule) Name() string {
	return "product"
}

func (m *ProductModule) Priority() int {
	// 商品模块先于订单/采购模块初始化
	return 5
}

func (m *ProductModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	pRepo := repository.NewProductRepository(ctx.DB)
	pService := service.NewProductService(pRepo, ctx.Redis)
	pHandler := handler.NewProductHandler(pService)

	// 2. 路由注册
	setupRoutes(ctx.Router, pHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ProductHandler) {
	g := r.Group("/products")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.List)
		g.GET("/hot", h.Hot)
		g.GET("/:id", h.Get)

		// 商家管理
		business := g.Group("")
		business.Use(middleware.BusinessMiddleware())
		{
			business.POST("", h.Create)
			business.PUT("/:id", h.Update)
			business.PATCH("/:id/status", h.SetStatus)
		}
	}

	cg := r.Group("/categories")
	cg.Use(middleware.AuthMiddleware())
	{
		cg.GET("", h.ListCategories)
		cg.POST("", middleware.BusinessMiddleware(), h.CreateCategory)
	}
}
