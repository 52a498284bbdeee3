package models

import (
	"time"

	"gorm.io/gorm"
)

// Ticket 工单表
type Ticket struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	UserID    uint           `gorm:"not null;index" json:"user_id"`           // 用户ID
	OrderID   *uint          `gorm:"index" json:"order_id"`                   // 关联订单ID，可空
	Subject   string         `gorm:"not null" json:"subject"`                 // 主题
	Message   string         `gorm:"type:text;not null" json:"message"`       // 内容
	Status    string         `gorm:"not null;index" json:"status"`            // 状态 open/answered/closed
	Reply     string         `gorm:"type:text" json:"reply"`                  // 管理员回复
	RepliedAt *time.Time     `json:"replied_at"`                              // 回复时间
	CreatedAt time.Time      `json:"created_at"`                              // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Ticket) TableName() string {
	return "tickets"
}
