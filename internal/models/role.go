package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// ModulePermission 单个模块的权限编码集合
type ModulePermission struct {
	Module  string `json:"module"`  // 模块名（coupons/products/...）
	Actions []int  `json:"actions"` // 动作编码（0=创建 1=查看 2=更新 3=删除）
}

// Allows 判断是否包含指定动作编码
func (p ModulePermission) Allows(action int) bool {
	for _, code := range p.Actions {
		if code == action {
			return true
		}
	}
	return false
}

// ModulePermissionList 模块权限列表（JSON 存储）
type ModulePermissionList []ModulePermission

// Allows 判断列表中对应模块是否包含指定动作编码
func (l ModulePermissionList) Allows(module string, action int) bool {
	for _, perm := range l {
		if perm.Module == module {
			return perm.Allows(action)
		}
	}
	return false
}

// Value 实现 driver.Valuer 接口
func (l ModulePermissionList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner 接口
func (l *ModulePermissionList) Scan(value interface{}) error {
	if value == nil {
		*l = ModulePermissionList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, l)
}

// Role 角色表
type Role struct {
	ID          uint                 `gorm:"primarykey" json:"id"`                   // 主键
	Name        string               `gorm:"uniqueIndex;not null" json:"name"`       // 角色名称
	IsActive    bool                 `gorm:"not null;default:true" json:"is_active"` // 是否启用
	Permissions ModulePermissionList `gorm:"type:json" json:"permissions"`           // 模块权限列表
	CreatedAt   time.Time            `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt   time.Time            `json:"updated_at"`                             // 更新时间
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (Role) TableName() string {
	return "roles"
}
