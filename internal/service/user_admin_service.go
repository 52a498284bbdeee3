package service

import (
	"context"

	"github.com/wordmart/internal/cache"
	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"
)

// UserAdminService 后台用户管理
type UserAdminService struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

// NewUserAdminService 创建后台用户服务
func NewUserAdminService(users repository.UserRepository, roles repository.RoleRepository) *UserAdminService {
	return &UserAdminService{users: users, roles: roles}
}

// List 获取用户列表
func (s *UserAdminService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.users.List(filter)
}

// Get 获取用户详情（含角色）
func (s *UserAdminService) Get(id uint) (*models.User, error) {
	user, err := s.users.GetByIDWithRole(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// AssignRole 绑定或解绑角色（roleID 为 nil 表示解绑）
func (s *UserAdminService) AssignRole(userID uint, roleID *uint) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if roleID != nil && *roleID > 0 {
		role, err := s.roles.GetByID(*roleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, ErrRoleNotFound
		}
		user.RoleID = roleID
	} else {
		user.RoleID = nil
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAdmin 切换管理员标记
func (s *UserAdminService) SetAdmin(userID uint, isAdmin bool) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.IsAdmin = isAdmin
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

// SetStatus 启用/禁用用户，禁用同时作废已签发令牌
func (s *UserAdminService) SetStatus(userID uint, status string) (*models.User, error) {
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return nil, ErrUserStatusInvalid
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.Status = status
	if status == constants.UserStatusDisabled {
		user.TokenVersion++
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}
