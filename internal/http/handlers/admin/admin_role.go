package admin

import (
	"errors"

	handlershared "github.com/wordmart/internal/http/handlers/shared"
	"github.com/wordmart/internal/http/response"
	"github.com/wordmart/internal/service"

	"github.com/gin-gonic/gin"
)

// ListRoles 角色列表
func (h *Handler) ListRoles(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	roles, total, err := h.RoleAdminService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, roles, response.NewPagination(page, pageSize, total))
}

// GetRole 角色详情
func (h *Handler) GetRole(c *gin.Context) {
	roleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	role, err := h.RoleAdminService.Get(roleID)
	if err != nil {
		respondRoleAdminError(c, err)
		return
	}
	response.Success(c, role)
}

// CreateRole 创建角色
func (h *Handler) CreateRole(c *gin.Context) {
	var input service.RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	role, err := h.RoleAdminService.Create(input)
	if err != nil {
		respondRoleAdminError(c, err)
		return
	}
	response.Success(c, role)
}

// UpdateRole 更新角色，权限矩阵整体覆盖
func (h *Handler) UpdateRole(c *gin.Context) {
	roleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	role, err := h.RoleAdminService.Update(roleID, input)
	if err != nil {
		respondRoleAdminError(c, err)
		return
	}
	response.Success(c, role)
}

// DeleteRole 删除角色，仍被用户引用时拒绝
func (h *Handler) DeleteRole(c *gin.Context) {
	roleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.RoleAdminService.Delete(roleID); err != nil {
		respondRoleAdminError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondRoleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoleNotFound):
		respondError(c, response.CodeNotFound, "error.role_not_found", nil)
	case errors.Is(err, service.ErrRoleNameRequired):
		respondError(c, response.CodeBadRequest, "error.role_name_required", nil)
	case errors.Is(err, service.ErrRoleNameTaken):
		respondError(c, response.CodeBadRequest, "error.role_exists", nil)
	case errors.Is(err, service.ErrRoleInUse):
		respondError(c, response.CodeBadRequest, "error.role_in_use", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
