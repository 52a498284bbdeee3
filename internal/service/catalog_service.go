package service

import (
	"strings"

	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"
)

// CategoryInput 分类入参
type CategoryInput struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// ProductInput 商品入参
type ProductInput struct {
	CategoryID  uint               `json:"category_id" binding:"required"`
	Slug        string             `json:"slug" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	PriceAmount models.Money       `json:"price_amount"`
	WordCount   int                `json:"word_count"`
	Images      models.StringArray `json:"images"`
	IsActive    *bool              `json:"is_active"`
	SortOrder   int                `json:"sort_order"`
}

// CatalogService 目录（分类+商品）业务，公开查询与后台维护共用
type CatalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(categories repository.CategoryRepository, products repository.ProductRepository) *CatalogService {
	return &CatalogService{categories: categories, products: products}
}

// ListCategories 分类列表
func (s *CatalogService) ListCategories(page, pageSize int) ([]models.Category, int64, error) {
	return s.categories.List(page, pageSize)
}

// CreateCategory 创建分类
func (s *CatalogService) CreateCategory(input CategoryInput) (*models.Category, error) {
	slug := normalizeSlug(input.Slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	existing, err := s.categories.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}
	category := models.Category{
		Slug:        slug,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		SortOrder:   input.SortOrder,
	}
	if err := s.categories.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory 更新分类
func (s *CatalogService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	slug := normalizeSlug(input.Slug)
	if slug != "" && slug != category.Slug {
		existing, err := s.categories.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != category.ID {
			return nil, ErrSlugTaken
		}
		category.Slug = slug
	}
	category.Name = strings.TrimSpace(input.Name)
	category.Description = input.Description
	category.SortOrder = input.SortOrder
	if err := s.categories.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 删除分类，仍有商品时拒绝
func (s *CatalogService) DeleteCategory(id uint) error {
	category, err := s.categories.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.categories.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categories.Delete(id)
}

// ListProducts 商品列表
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.products.List(filter)
}

// GetProduct 商品详情
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetProductBySlug 按路径标识取商品（仅公开接口使用，只返回上架商品）
func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	product, err := s.products.GetBySlug(normalizeSlug(slug))
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct 创建商品
func (s *CatalogService) CreateProduct(input ProductInput) (*models.Product, error) {
	category, err := s.categories.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	slug := normalizeSlug(input.Slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	existing, err := s.products.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	product := models.Product{
		CategoryID:  input.CategoryID,
		Slug:        slug,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		PriceAmount: input.PriceAmount,
		WordCount:   input.WordCount,
		Images:      input.Images,
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.products.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct 更新商品
func (s *CatalogService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
		category, err := s.categories.GetByID(input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		product.CategoryID = input.CategoryID
	}
	slug := normalizeSlug(input.Slug)
	if slug != "" && slug != product.Slug {
		existing, err := s.products.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, ErrSlugTaken
		}
		product.Slug = slug
	}
	product.Title = strings.TrimSpace(input.Title)
	product.Description = input.Description
	product.PriceAmount = input.PriceAmount
	product.WordCount = input.WordCount
	product.Images = input.Images
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.products.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct 删除商品
func (s *CatalogService) DeleteProduct(id uint) error {
	product, err := s.products.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.products.Delete(id)
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
