package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	productRepo "bbq_ordering/internal/domain/product/repository"
	"bbq_ordering/internal/domain/purchase/repository"
	"bbq_ordering/internal/domain/purchase/service"
	"bbq_ordering/pkg/response"
	"bbq_ordering/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PurchaseHandler 进货处理器
type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(service service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// PurchaseInput 进货输入
type PurchaseInput struct {
	ProductID uint            `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unitCost" binding:"required"`
	Remark    string          `json:"remark"`
}

// Create 创建进货记录
func (h *PurchaseHandler) Create(c *gin.Context) {
	var input PurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if input.UnitCost.IsNegative() {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "进货单价不能为负")
		return
	}

	purchase, err := h.service.CreatePurchase(input.ProductID, input.Quantity, input.UnitCost, input.Remark)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrProductNotFound, "商品不存在")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "创建进货记录失败")
		return
	}
	response.Success(c, purchase)
}

// Remove 删除进货记录
func (h *PurchaseHandler) Remove(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "无效的记录ID")
		return
	}

	if err := h.service.RemovePurchase(uint(id)); err != nil {
		var insufficientErr *productRepo.InsufficientAvailableError
		switch {
		case errors.Is(err, repository.ErrPurchaseNotFound):
			response.Error(c, http.StatusNotFound, response.ErrPurchaseNotFound, "进货记录不存在")
		case errors.As(err, &insufficientErr):
			response.Fail(c, response.ErrInsufficientAvailable, "商品已售出部分库存，无法删除进货记录")
		case errors.Is(err, productRepo.ErrProductNotFound):
			response.Error(c, http.StatusNotFound, response.ErrProductNotFound, "商品不存在")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "删除进货记录失败")
		}
		return
	}
	response.Success(c, nil)
}

// ListQuery 进货记录查询
type ListQuery struct {
	utils.Pagination
	ProductID uint   `form:"productId"`
	StartTime string `form:"startTime"`
	EndTime   string `form:"endTime"`
}

// List 进货记录列表
func (h *PurchaseHandler) List(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	filter := repository.PurchaseFilter{ProductID: query.ProductID}
	if query.StartTime != "" && query.EndTime != "" {
		start, err1 := time.Parse(time.RFC3339, query.StartTime)
		end, err2 := time.Parse(time.RFC3339, query.EndTime)
		if err1 != nil || err2 != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "时间格式错误")
			return
		}
		filter.StartTime = &start
		filter.EndTime = &end
	}

	_, limit := query.GetPageOffset()
	purchases, total, err := h.service.ListPurchases(filter, query.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取进货记录失败")
		return
	}

	response.Success(c, utils.PageResult{
		List:     purchases,
		Total:    total,
		Page:     query.Page,
		PageSize: limit,
	})
}
