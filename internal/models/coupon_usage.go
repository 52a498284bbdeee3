package models

import (
	"time"

	"gorm.io/gorm"
)

// CouponUsage 优惠券按用户使用计数
type CouponUsage struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                     // 主键
	CouponID   uint           `gorm:"not null;uniqueIndex:idx_coupon_user" json:"coupon_id"`    // 优惠券ID
	UserID     uint           `gorm:"not null;uniqueIndex:idx_coupon_user" json:"user_id"`      // 用户ID
	UsageCount int            `gorm:"not null;default:0" json:"usage_count"`                    // 使用次数（只增不减）
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (CouponUsage) TableName() string {
	return "coupon_usages"
}
