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

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	roleID, _ := strconv.ParseUint(c.Query("role_id"), 10, 64)
	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
		RoleID:   uint(roleID),
	}
	users, total, err := h.UserAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, users, response.NewPagination(page, pageSize, total))
}

// GetUser 用户详情
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.UserAdminService.Get(userID)
	if err != nil {
		respondUserAdminError(c, err)
		return
	}
	response.Success(c, user)
}

// AssignRoleRequest 分配角色请求，role_id 为空表示清除角色
type AssignRoleRequest struct {
	RoleID *uint `json:"role_id"`
}

// AssignUserRole 为用户分配或清除角色
func (h *Handler) AssignUserRole(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserAdminService.AssignRole(userID, req.RoleID)
	if err != nil {
		respondUserAdminError(c, err)
		return
	}
	response.Success(c, user)
}

// SetUserAdminRequest 设置管理员标记请求
type SetUserAdminRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

// SetUserAdmin 设置或取消管理员标记
func (h *Handler) SetUserAdmin(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetUserAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserAdminService.SetAdmin(userID, *req.IsAdmin)
	if err != nil {
		respondUserAdminError(c, err)
		return
	}
	response.Success(c, user)
}

// SetUserStatusRequest 设置用户状态请求
type SetUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetUserStatus 启用或禁用用户
func (h *Handler) SetUserStatus(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserAdminService.SetStatus(userID, req.Status)
	if err != nil {
		respondUserAdminError(c, err)
		return
	}
	response.Success(c, user)
}

func respondUserAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
	case errors.Is(err, service.ErrRoleNotFound):
		respondError(c, response.CodeNotFound, "error.role_not_found", nil)
	case errors.Is(err, service.ErrUserStatusInvalid):
		respondError(c, response.CodeBadRequest, "error.user_status_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
