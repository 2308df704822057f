package purchase

import (
	productRepo "bbq_ordering/internal/domain/product/repository"
	"bbq_ordering/internal/domain/purchase/handler"
	"bbq_ordering/internal/domain/purchase/repository"
	"bbq_ordering/internal/domain/purchase/service"
	"bbq_ordering/internal/pkg/middleware"
	"bbq_ordering/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// PurchaseModule 进货模块
type PurchaseModule struct{}

func init() {
	registry.Register(&PurchaseModule{})
}

func (m *PurchaseModule) Name() string {
	return "purchase"
}

func (m *PurchaseModule) Priority() int {
	return 10
}

func (m *PurchaseModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	pRepo := repository.NewPurchaseRepository(ctx.DB)
	inventory := productRepo.NewInventoryRepository()
	pService := service.NewPurchaseService(ctx.DB, pRepo, inventory)
	pHandler := handler.NewPurchaseHandler(pService)

	// 2. 路由注册（全部商家侧）
	setupRoutes(ctx.Router, pHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PurchaseHandler) {
	g := r.Group("/purchases")
	g.Use(middleware.AuthMiddleware(), middleware.BusinessMiddleware())
	{
		g.POST("", h.Create)
		g.DELETE("/:id", h.Remove)
		g.GET("", h.List)
	}
}
