package admin

import (
	"errors"
	"strings"

	handlershared "github.com/wordmart/internal/http/handlers/shared"
	"github.com/wordmart/internal/http/response"
	"github.com/wordmart/internal/repository"
	"github.com/wordmart/internal/service"

	"github.com/gin-gonic/gin"
)

// ListPosts 内容列表，含未发布内容
func (h *Handler) ListPosts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     strings.TrimSpace(c.Query("type")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	posts, total, err := h.PostService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetPost 内容详情
func (h *Handler) GetPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	post, err := h.PostService.Get(postID)
	if err != nil {
		respondPostAdminError(c, err)
		return
	}
	response.Success(c, post)
}

// CreatePost 创建内容
func (h *Handler) CreatePost(c *gin.Context) {
	var input service.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	post, err := h.PostService.Create(input)
	if err != nil {
		respondPostAdminError(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePost 更新内容
func (h *Handler) UpdatePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	post, err := h.PostService.Update(postID, input)
	if err != nil {
		respondPostAdminError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除内容
func (h *Handler) DeletePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.PostService.Delete(postID); err != nil {
		respondPostAdminError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondPostAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, response.CodeNotFound, "error.post_not_found", nil)
	case errors.Is(err, service.ErrPostTypeInvalid):
		respondError(c, response.CodeBadRequest, "error.post_type_invalid", nil)
	case errors.Is(err, service.ErrSlugRequired):
		respondError(c, response.CodeBadRequest, "error.slug_required", nil)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeBadRequest, "error.slug_exists", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
