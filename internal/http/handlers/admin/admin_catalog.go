package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/wordmart/internal/http/handlers/shared"
	"github.com/wordmart/internal/http/response"
	"github.com/wordmart/internal/repository"
	"github.com/wordmart/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	categories, total, err := h.CatalogService.ListCategories(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, categories, response.NewPagination(page, pageSize, total))
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CatalogService.CreateCategory(input)
	if err != nil {
		respondCatalogAdminError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CatalogService.UpdateCategory(categoryID, input)
	if err != nil {
		respondCatalogAdminError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，仍挂有商品时拒绝
func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteCategory(categoryID); err != nil {
		respondCatalogAdminError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListProducts 商品列表，含未上架商品
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
	}
	products, total, err := h.CatalogService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.CatalogService.GetProduct(productID)
	if err != nil {
		respondCatalogAdminError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.CreateProduct(input)
	if err != nil {
		respondCatalogAdminError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.UpdateProduct(productID, input)
	if err != nil {
		respondCatalogAdminError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteProduct(productID); err != nil {
		respondCatalogAdminError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondCatalogAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "error.category_not_found", nil)
	case errors.Is(err, service.ErrCategoryInUse):
		respondError(c, response.CodeBadRequest, "error.category_in_use", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
	case errors.Is(err, service.ErrSlugRequired):
		respondError(c, response.CodeBadRequest, "error.slug_required", nil)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeBadRequest, "error.slug_exists", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
