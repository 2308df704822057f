package service

import (
	"context"
	"encoding/json"
	"time"

	"bbq_ordering/internal/domain/product/model"
	"bbq_ordering/internal/domain/product/repository"
	"bbq_ordering/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	hotProductsKey = "products:hot"
	hotProductsTTL = time.Minute
)

type ProductService interface {
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	SetStatus(id uint, status string) error
	GetProduct(id uint) (*model.Product, error)
	ListProducts(filter repository.ProductFilter, page, pageSize int) ([]model.Product, int64, error)
	// ListHotProducts 热销商品，短 TTL redis 缓存
	ListHotProducts(ctx context.Context) ([]model.Product, error)

	CreateCategory(category *model.Category) error
	ListCategories() ([]model.Category, error)
}

type productService struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, rdb: rdb}
}

func (s *productService) CreateProduct(product *model.Product) error {
	return s.repo.Create(product)
}

func (s *productService) UpdateProduct(product *model.Product) error {
	// 库存字段只允许通过库存台账变更，这里防止后台表单覆盖
	current, err := s.repo.GetByID(product.ID)
	if err != nil {
		return err
	}
	product.Stock = current.Stock
	product.SoldQuantity = current.SoldQuantity
	product.CostPrice = current.CostPrice

	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.invalidateHotCache()
	return nil
}

func (s *productService) SetStatus(id uint, status string) error {
	if err := s.repo.UpdateStatus(id, status); err != nil {
		return err
	}
	s.invalidateHotCache()
	return nil
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	return s.repo.GetByID(id)
}

func (s *productService) ListProducts(filter repository.ProductFilter, page, pageSize int) ([]model.Product, int64, error) {
	offset := (page - 1) * pageSize
	return s.repo.List(filter, offset, pageSize)
}

func (s *productService) ListHotProducts(ctx context.Context) ([]model.Product, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, hotProductsKey).Bytes()
		if err == nil {
			var products []model.Product
			if json.Unmarshal(cached, &products) == nil {
				return products, nil
			}
		}
	}

	isHot := true
	products, _, err := s.repo.List(repository.ProductFilter{
		Status: model.StatusOn,
		IsHot:  &isHot,
	}, 0, 50)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(products); err == nil {
			if err := s.rdb.Set(ctx, hotProductsKey, payload, hotProductsTTL).Err(); err != nil && logger.Log != nil {
				logger.Log.Warn("hot products cache write failed", zap.Error(err))
			}
		}
	}
	return products, nil
}

func (s *productService) invalidateHotCache() {
	if s.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = s.rdb.Del(ctx, hotProductsKey).Err()
}

func (s *productService) CreateCategory(category *model.Category) error {
	return s.repo.CreateCategory(category)
}

func (s *productService) ListCategories() ([]model.Category, error) {
	return s.repo.ListCategories()
}
