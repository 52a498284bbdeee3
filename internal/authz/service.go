package authz

import (
	"errors"

	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/logger"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"
)

// 权限判定结果错误
// 除用户不存在外，一切拒绝原因对调用方统一呈现为 ErrPermissionDenied，
// 具体原因只进日志，避免向客户端泄露角色配置细节。
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// Service 角色权限解析服务
type Service struct {
	users repository.UserRepository
	roles repository.RoleRepository
	cache PermissionCache
}

// NewService 创建权限解析服务
func NewService(users repository.UserRepository, roles repository.RoleRepository, cache PermissionCache) *Service {
	return &Service{users: users, roles: roles, cache: cache}
}

// InvalidateRole 清除指定角色的权限缓存，角色更新或删除后调用
func (s *Service) InvalidateRole(roleID uint) {
	if s == nil || s.cache == nil {
		return
	}
	s.cache.Invalidate(roleID)
}

// CheckPermission 判定用户对模块动作是否有权限。
// 规则依次为：用户存在且未禁用；管理员直通；无角色用户可创建工单；
// 其余按用户绑定角色的权限列表判定，角色停用视为无权限。
func (s *Service) CheckPermission(userID uint, module string, action int) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		logger.Errorw("authz_load_user_failed", "user_id", userID, "error", err)
		return ErrPermissionDenied
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.Status != constants.UserStatusActive {
		logger.Infow("authz_denied_user_disabled", "user_id", userID, "module", module, "action", action)
		return ErrPermissionDenied
	}

	// 管理员对所有模块动作直通
	if user.IsAdmin {
		return nil
	}

	if user.RoleID == nil || *user.RoleID == 0 {
		// 无角色的普通客户保留创建工单的自助权限，这是唯一的硬编码放行
		if module == constants.ModuleTickets && action == constants.ActionCreate {
			return nil
		}
		logger.Infow("authz_denied_no_role", "user_id", userID, "module", module, "action", action)
		return ErrPermissionDenied
	}

	perms, err := s.resolveRolePermissions(*user.RoleID)
	if err != nil {
		logger.Errorw("authz_resolve_role_failed", "user_id", userID, "role_id", *user.RoleID, "error", err)
		return ErrPermissionDenied
	}
	if perms == nil {
		logger.Infow("authz_denied_role_unavailable", "user_id", userID, "role_id", *user.RoleID, "module", module, "action", action)
		return ErrPermissionDenied
	}

	if !perms.Allows(module, action) {
		logger.Infow("authz_denied", "user_id", userID, "role_id", *user.RoleID, "module", module, "action", action)
		return ErrPermissionDenied
	}
	return nil
}

// resolveRolePermissions 取角色权限列表，优先走缓存。
// 角色不存在或已停用时返回 nil 列表（缓存负结果避免反复查库）。
func (s *Service) resolveRolePermissions(roleID uint) (models.ModulePermissionList, error) {
	if s.cache != nil {
		if perms, ok := s.cache.Get(roleID); ok {
			return perms, nil
		}
	}

	role, err := s.roles.GetByID(roleID)
	if err != nil {
		return nil, err
	}

	var perms models.ModulePermissionList
	if role != nil && role.IsActive {
		perms = role.Permissions
		if perms == nil {
			perms = models.ModulePermissionList{}
		}
	}
	if s.cache != nil {
		s.cache.Set(roleID, perms)
	}
	return perms, nil
}
