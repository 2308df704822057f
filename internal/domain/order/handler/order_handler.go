package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	orderModel "bbq_ordering/internal/domain/order/model"
	"bbq_ordering/internal/domain/order/repository"
	"bbq_ordering/internal/domain/order/service"
	productRepo "bbq_ordering/internal/domain/product/repository"
	userModel "bbq_ordering/internal/domain/user/model"
	"bbq_ordering/internal/pkg/middleware"
	"bbq_ordering/pkg/response"
	"bbq_ordering/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler 订单处理器
type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create 用户下单
func (h *OrderHandler) Create(c *gin.Context) {
	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	order, err := h.service.CreateOrder(middleware.CurrentUserID(c), input)
	if err != nil {
		h.failCreate(c, err)
		return
	}
	response.Success(c, order)
}

// failCreate 下单失败的错误翻译，占库存和券核销的失败都从这里出去
func (h *OrderHandler) failCreate(c *gin.Context, err error) {
	var insufficient *productRepo.InsufficientStockError
	var badQuantity *service.InvalidQuantityError

	switch {
	case errors.Is(err, service.ErrEmptyItems):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "订单不能为空")
	case errors.As(err, &badQuantity):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "商品数量必须大于0")
	case errors.Is(err, productRepo.ErrProductNotFound):
		response.Fail(c, response.ErrProductNotFound, "商品不存在或已下架")
	case errors.As(err, &insufficient):
		response.Fail(c, response.ErrInsufficientStock, insufficient.Name+" 库存不足")
	case errors.Is(err, service.ErrCouponNotHeld):
		response.Fail(c, response.ErrCouponUsed, "优惠券不存在或已使用")
	case errors.Is(err, service.ErrCouponNotEligible):
		response.Fail(c, response.ErrCouponNotEligible, "订单金额未达到优惠券使用门槛")
	case errors.Is(err, service.ErrConflict):
		response.Fail(c, response.ErrConflict, "下单过于频繁，请重试")
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "下单失败")
	}
}

// Preview 价格试算
func (h *OrderHandler) Preview(c *gin.Context) {
	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	breakdown, err := h.service.Preview(middleware.CurrentUserID(c), input)
	if err != nil {
		h.failCreate(c, err)
		return
	}
	response.Success(c, breakdown)
}

// Cancel 用户取消自己的订单
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "无效的订单ID")
		return
	}

	order, err := h.service.CancelOrder(middleware.CurrentUserID(c), uint(id))
	if err != nil {
		var invalid *service.InvalidTransitionError
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.Fail(c, response.ErrOrderNotFound, "订单不存在")
		case errors.As(err, &invalid):
			response.Fail(c, response.ErrInvalidTransition, "当前状态的订单无法取消")
		case errors.Is(err, service.ErrConflict):
			response.Fail(c, response.ErrConflict, "订单状态已变化，请刷新后重试")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "取消订单失败")
		}
		return
	}
	response.Success(c, order)
}

// Get 订单详情
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "无效的订单ID")
		return
	}

	// 商家可以看所有订单
	userID := middleware.CurrentUserID(c)
	if c.GetString("role") == userModel.RoleBusiness {
		userID = 0
	}

	order, err := h.service.GetOrder(userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.Fail(c, response.ErrOrderNotFound, "订单不存在")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取订单失败")
		return
	}
	response.Success(c, order)
}

// ListMine 用户自己的订单列表
func (h *OrderHandler) ListMine(c *gin.Context) {
	var query utils.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	_, limit := query.GetPageOffset()
	orders, total, err := h.service.ListMyOrders(middleware.CurrentUserID(c), query.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取订单列表失败")
		return
	}

	response.Success(c, utils.PageResult{
		List:     orders,
		Total:    total,
		Page:     query.Page,
		PageSize: limit,
	})
}

// BusinessListQuery 商家侧订单筛选
type BusinessListQuery struct {
	utils.Pagination
	Status    string `form:"status" binding:"omitempty,oneof=pending processing completed cancelled"`
	StartTime string `form:"startTime"`
	EndTime   string `form:"endTime"`
}

// List 商家侧订单列表
func (h *OrderHandler) List(c *gin.Context) {
	var query BusinessListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	filter := repository.BusinessFilter{Status: orderModel.Status(query.Status)}
	if query.StartTime != "" {
		t, err := time.Parse(time.RFC3339, query.StartTime)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "无效的开始时间")
			return
		}
		filter.StartTime = &t
	}
	if query.EndTime != "" {
		t, err := time.Parse(time.RFC3339, query.EndTime)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "无效的结束时间")
			return
		}
		filter.EndTime = &t
	}

	_, limit := query.GetPageOffset()
	orders, total, err := h.service.ListOrders(filter, query.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取订单列表失败")
		return
	}

	response.Success(c, utils.PageResult{
		List:     orders,
		Total:    total,
		Page:     query.Page,
		PageSize: limit,
	})
}

// StatusInput 状态变更输入
type StatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending processing completed cancelled"`
}

// UpdateStatus 商家推进订单状态
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "无效的订单ID")
		return
	}

	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	order, err := h.service.UpdateStatus(uint(id), orderModel.Status(input.Status))
	if err != nil {
		var invalid *service.InvalidTransitionError
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.Fail(c, response.ErrOrderNotFound, "订单不存在")
		case errors.As(err, &invalid):
			response.Fail(c, response.ErrInvalidTransition, "订单状态不允许该变更")
		case errors.Is(err, service.ErrConflict):
			response.Fail(c, response.ErrConflict, "订单状态已变化，请刷新后重试")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "更新订单状态失败")
		}
		return
	}
	response.Success(c, order)
}
