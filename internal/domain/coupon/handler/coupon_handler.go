package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bbq_ordering/internal/domain/coupon/model"
	"bbq_ordering/internal/domain/coupon/repository"
	"bbq_ordering/internal/domain/coupon/service"
	"bbq_ordering/internal/pkg/middleware"
	"bbq_ordering/pkg/response"
	"bbq_ordering/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CouponHandler 优惠券处理器
type CouponHandler struct {
	service service.CouponService
}

func NewCouponHandler(service service.CouponService) *CouponHandler {
	return &CouponHandler{service: service}
}

// CouponInput 优惠券创建/更新输入
type CouponInput struct {
	Code        string          `json:"code" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=amount percentage"`
	Value       decimal.Decimal `json:"value" binding:"required"`
	MinAmount   decimal.Decimal `json:"minAmount"`
	Probability decimal.Decimal `json:"probability"`
}

// Create 创建优惠券（商家）
func (h *CouponHandler) Create(c *gin.Context) {
	var input CouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	coupon := &model.Coupon{
		Code:        input.Code,
		Name:        input.Name,
		Type:        input.Type,
		Value:       input.Value,
		MinAmount:   input.MinAmount,
		Probability: input.Probability,
	}
	if err := h.service.CreateCoupon(coupon); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "创建优惠券失败")
		return
	}
	response.Success(c, coupon)
}

// Update 更新优惠券（商家）
func (h *CouponHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "无效的优惠券ID")
		return
	}

	var input CouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	coupon, err := h.service.GetCoupon(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrCouponNotFound, "优惠券不存在")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取优惠券失败")
		return
	}

	coupon.Code = input.Code
	coupon.Name = input.Name
	coupon.Type = input.Type
	coupon.Value = input.Value
	coupon.MinAmount = input.MinAmount
	coupon.Probability = input.Probability

	if err := h.service.UpdateCoupon(coupon); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "更新优惠券失败")
		return
	}
	response.Success(c, coupon)
}

// Remove 下架优惠券（商家，软删除）
func (h *CouponHandler) Remove(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "无效的优惠券ID")
		return
	}

	if err := h.service.RemoveCoupon(uint(id)); err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrCouponNotFound, "优惠券不存在")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "删除优惠券失败")
		return
	}
	response.Success(c, nil)
}

// List 优惠券列表（商家）
func (h *CouponHandler) List(c *gin.Context) {
	var query utils.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	_, limit := query.GetPageOffset()
	coupons, total, err := h.service.ListCoupons(query.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取优惠券列表失败")
		return
	}

	response.Success(c, utils.PageResult{
		List:     coupons,
		Total:    total,
		Page:     query.Page,
		PageSize: limit,
	})
}

// Draw 抽奖领券
func (h *CouponHandler) Draw(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	userCoupon, err := h.service.Draw(userID)
	if err != nil {
		if errors.Is(err, service.ErrNoCouponsAvailable) {
			response.Fail(c, response.ErrNoCoupons, "暂无可用优惠券")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "领取优惠券失败")
		return
	}
	response.Success(c, userCoupon)
}

// Mine 我的优惠券
func (h *CouponHandler) Mine(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	userCoupons, err := h.service.ListUserCoupons(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取用户优惠券失败")
		return
	}
	response.Success(c, userCoupons)
}

// Drawable 转盘展示列表
func (h *CouponHandler) Drawable(c *gin.Context) {
	coupons, err := h.service.ListDrawable()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取优惠券列表失败")
		return
	}
	response.Success(c, coupons)
}
