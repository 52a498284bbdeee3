package service

import (
	"strings"

	"github.com/wordmart/internal/authz"
	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"
)

// RoleInput 后台创建/更新角色的入参
type RoleInput struct {
	Name        string                      `json:"name" binding:"required"`
	IsActive    *bool                       `json:"is_active"`
	Permissions models.ModulePermissionList `json:"permissions"`
}

// RoleAdminService 后台角色管理。
// 所有写操作都会使权限缓存失效，保证解析结果及时收敛。
type RoleAdminService struct {
	roles repository.RoleRepository
	users repository.UserRepository
	authz *authz.Service
}

// NewRoleAdminService 创建后台角色服务
func NewRoleAdminService(roles repository.RoleRepository, users repository.UserRepository, authzService *authz.Service) *RoleAdminService {
	return &RoleAdminService{roles: roles, users: users, authz: authzService}
}

var knownModules = map[string]bool{
	constants.ModuleCoupons:    true,
	constants.ModuleProducts:   true,
	constants.ModuleCategories: true,
	constants.ModulePosts:      true,
	constants.ModuleOrders:     true,
	constants.ModuleRoles:      true,
	constants.ModuleUsers:      true,
	constants.ModuleTickets:    true,
}

// sanitizePermissions 过滤未知模块与非法动作编码
func sanitizePermissions(perms models.ModulePermissionList) models.ModulePermissionList {
	cleaned := make(models.ModulePermissionList, 0, len(perms))
	for _, perm := range perms {
		module := strings.ToLower(strings.TrimSpace(perm.Module))
		if !knownModules[module] {
			continue
		}
		actions := make([]int, 0, len(perm.Actions))
		for _, action := range perm.Actions {
			if action >= constants.ActionCreate && action <= constants.ActionDelete {
				actions = append(actions, action)
			}
		}
		cleaned = append(cleaned, models.ModulePermission{Module: module, Actions: actions})
	}
	return cleaned
}

// Create 创建角色
func (s *RoleAdminService) Create(input RoleInput) (*models.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrRoleNameRequired
	}
	existing, err := s.roles.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRoleNameTaken
	}

	role := models.Role{
		Name:        name,
		IsActive:    true,
		Permissions: sanitizePermissions(input.Permissions),
	}
	if input.IsActive != nil {
		role.IsActive = *input.IsActive
	}
	if err := s.roles.Create(&role); err != nil {
		return nil, err
	}
	return &role, nil
}

// Update 更新角色并使缓存失效
func (s *RoleAdminService) Update(id uint, input RoleInput) (*models.Role, error) {
	role, err := s.roles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name != "" && name != role.Name {
		existing, err := s.roles.GetByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != role.ID {
			return nil, ErrRoleNameTaken
		}
		role.Name = name
	}
	role.Permissions = sanitizePermissions(input.Permissions)
	if input.IsActive != nil {
		role.IsActive = *input.IsActive
	}

	if err := s.roles.Update(role); err != nil {
		return nil, err
	}
	s.authz.InvalidateRole(role.ID)
	return role, nil
}

// Delete 删除角色并使缓存失效，角色仍被用户绑定时拒绝
func (s *RoleAdminService) Delete(id uint) error {
	role, err := s.roles.GetByID(id)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}
	inUse, err := s.users.CountByRoleID(id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrRoleInUse
	}
	if err := s.roles.Delete(id); err != nil {
		return err
	}
	s.authz.InvalidateRole(id)
	return nil
}

// Get 获取角色详情
func (s *RoleAdminService) Get(id uint) (*models.Role, error) {
	role, err := s.roles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	return role, nil
}

// List 获取角色列表
func (s *RoleAdminService) List(page, pageSize int) ([]models.Role, int64, error) {
	return s.roles.List(page, pageSize)
}
