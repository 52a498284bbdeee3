package repository

import (
	"errors"

	"github.com/wordmart/internal/models"

	"gorm.io/gorm"
)

// RoleRepository 角色数据访问接口
type RoleRepository interface {
	GetByID(id uint) (*models.Role, error)
	GetByName(name string) (*models.Role, error)
	Create(role *models.Role) error
	Update(role *models.Role) error
	Delete(id uint) error
	List(page, pageSize int) ([]models.Role, int64, error)
	WithTx(tx *gorm.DB) *GormRoleRepository
}

// GormRoleRepository GORM 实现
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository 创建角色仓库
func NewRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRoleRepository) WithTx(tx *gorm.DB) *GormRoleRepository {
	if tx == nil {
		return r
	}
	return &GormRoleRepository{db: tx}
}

// GetByID 根据ID获取角色
func (r *GormRoleRepository) GetByID(id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// GetByName 根据名称获取角色
func (r *GormRoleRepository) GetByName(name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// Create 创建角色
func (r *GormRoleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

// Update 更新角色
func (r *GormRoleRepository) Update(role *models.Role) error {
	return r.db.Save(role).Error
}

// Delete 删除角色
func (r *GormRoleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Role{}, id).Error
}

// List 获取角色列表
func (r *GormRoleRepository) List(page, pageSize int) ([]models.Role, int64, error) {
	query := r.db.Model(&models.Role{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var roles []models.Role
	if err := query.Order("id asc").Find(&roles).Error; err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}
