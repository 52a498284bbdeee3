package public

import (
	"strconv"
	"strings"

	handlershared "github.com/wordmart/internal/http/handlers/shared"
	"github.com/wordmart/internal/http/response"
	"github.com/wordmart/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetCategories 公开分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	categories, total, err := h.CatalogService.ListCategories(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, categories, response.NewPagination(page, pageSize, total))
}

// GetProducts 公开商品列表，仅含上架商品
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       strings.TrimSpace(c.Query("search")),
		OnlyActive:   true,
		WithCategory: true,
	}
	products, total, err := h.CatalogService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProductBySlug 公开商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	product, err := h.CatalogService.GetProductBySlug(slug)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if product == nil {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	response.Success(c, product)
}

// GetPosts 公开内容列表（按类型）
func (h *Handler) GetPosts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	postType := strings.TrimSpace(c.Query("type"))
	posts, total, err := h.PostService.ListPublished(postType, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetPostBySlug 公开内容详情
func (h *Handler) GetPostBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	post, err := h.PostService.GetPublishedBySlug(slug)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if post == nil {
		respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		return
	}
	response.Success(c, post)
}
