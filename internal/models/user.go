package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                   // 主键
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`      // 邮箱
	PasswordHash       string         `gorm:"not null" json:"-"`                      // 密码哈希（不返回给前端）
	DisplayName        string         `gorm:"default:''" json:"display_name"`         // 昵称
	Locale             string         `gorm:"default:'en-US'" json:"locale"`          // 语言偏好
	Status             string         `gorm:"default:'active'" json:"status"`         // 账号状态
	IsAdmin            bool           `gorm:"not null;default:false" json:"is_admin"` // 超级管理员（绕过所有权限检查）
	RoleID             *uint          `gorm:"index" json:"role_id"`                   // 角色ID（空表示普通客户）
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`            // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                         // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`                          // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间

	// 关联
	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"` // 角色信息
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
