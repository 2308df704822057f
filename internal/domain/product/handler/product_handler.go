package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bbq_ordering/internal/domain/product/model"
	"bbq_ordering/internal/domain/product/repository"
	"bbq_ordering/internal/domain/product/service"
	"bbq_ordering/pkg/response"
	"bbq_ordering/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductHandler 商品处理器
type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(service service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Image       string          `json:"image"`
	Status      string          `json:"status" binding:"omitempty,oneof=on off"`
	IsHot       bool            `json:"isHot"`
	CategoryID  uint            `json:"categoryId" binding:"required"`
}

// ListQuery 商品列表查询
type ListQuery struct {
	utils.Pagination
	CategoryID uint   `form:"categoryId"`
	Status     string `form:"status"`
	Keyword    string `form:"keyword"`
}

// List 商品列表
func (h *ProductHandler) List(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	_, limit := query.GetPageOffset()
	products, total, err := h.service.ListProducts(repository.ProductFilter{
		CategoryID: query.CategoryID,
		Status:     query.Status,
		Keyword:    query.Keyword,
	}, query.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取商品列表失败")
		return
	}

	response.Success(c, utils.PageResult{
		List:     products,
		Total:    total,
		Page:     query.Page,
		PageSize: limit,
	})
}

// Hot 热销商品
func (h *ProductHandler) Hot(c *gin.Context) {
	products, err := h.service.ListHotProducts(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取热销商品失败")
		return
	}
	response.Success(c, products)
}

// Get 商品详情
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "无效的商品ID")
		return
	}

	product, err := h.service.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrProductNotFound, "商品不存在")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取商品失败")
		return
	}
	response.Success(c, product)
}

// Create 创建商品（商家）
func (h *ProductHandler) Create(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	status := input.Status
	if status == "" {
		status = model.StatusOn
	}

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Status:      status,
		IsHot:       input.IsHot,
		CategoryID:  input.CategoryID,
	}
	if err := h.service.CreateProduct(product); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "创建商品失败")
		return
	}
	response.Success(c, product)
}

// Update 更新商品（商家）
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "无效的商品ID")
		return
	}

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	product, err := h.service.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrProductNotFound, "商品不存在")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取商品失败")
		return
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Image = input.Image
	if input.Status != "" {
		product.Status = input.Status
	}
	product.IsHot = input.IsHot
	product.CategoryID = input.CategoryID

	if err := h.service.UpdateProduct(product); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "更新商品失败")
		return
	}
	response.Success(c, product)
}

// SetStatus 上下架（商家）
func (h *ProductHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "无效的商品ID")
		return
	}

	var input struct {
		Status string `json:"status" binding:"required,oneof=on off"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.SetStatus(uint(id), input.Status); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrProductNotFound, "商品不存在")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "更新状态失败")
		return
	}
	response.Success(c, nil)
}

// CategoryInput 分类输入
type CategoryInput struct {
	Name string `json:"name" binding:"required"`
	Sort int    `json:"sort"`
}

// CreateCategory 创建分类（商家）
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	category := &model.Category{Name: input.Name, Sort: input.Sort}
	if err := h.service.CreateCategory(category); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "创建分类失败")
		return
	}
	response.Success(c, category)
}

// ListCategories 分类列表
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "获取分类失败")
		return
	}
	response.Success(c, categories)
}
