package repository

import (
	"errors"

	"bbq_ordering/internal/domain/product/model"

	"gorm.io/gorm"
)

// ProductFilter 商品列表筛选
type ProductFilter struct {
	CategoryID uint
	Status     string
	IsHot      *bool
	Keyword    string
}

type ProductRepository interface {
	Create(product *model.Product) error
	Update(product *model.Product) error
	UpdateStatus(id uint, status string) error
	GetByID(id uint) (*model.Product, error)
	List(filter ProductFilter, offset, limit int) ([]model.Product, int64, error)

	CreateCategory(category *model.Category) error
	ListCategories() ([]model.Category, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&model.Product{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) GetByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(filter ProductFilter, offset, limit int) ([]model.Product, int64, error) {
	query := r.db.Model(&model.Product{})

	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.IsHot != nil {
		query = query.Where("is_hot = ?", *filter.IsHot)
	}
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) CreateCategory(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *productRepository) ListCategories() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("sort ASC, id ASC").Find(&categories).Error
	return categories, err
}
