package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon 优惠券
type Coupon struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                               // 主键
	Code              string         `gorm:"uniqueIndex;not null" json:"code"`                                   // 优惠码（统一大写存储）
	IsActive          bool           `gorm:"not null;default:true" json:"is_active"`                             // 是否启用
	DiscountType      string         `gorm:"not null" json:"discount_type"`                                      // 类型（percentage/flat/product_specific/quantity_based）
	DiscountValue     Money          `gorm:"type:decimal(20,2);not null" json:"discount_value"`                  // 数值（百分比或固定金额）
	MinOrderAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_amount"`      // 使用门槛
	MaxDiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"max_discount_amount"`   // 最大优惠金额（0 表示不限制）
	SpecificProductID *uint          `gorm:"index" json:"specific_product_id"`                                   // 指定商品ID（product_specific 必填）
	MinQuantity       int            `gorm:"not null;default:0" json:"min_quantity"`                             // 最低数量（quantity_based 使用）
	MaxWordCount      int            `gorm:"not null;default:0" json:"max_word_count"`                           // 单品字数上限（仅 100% 折扣场景，0 表示不限制）
	UsageLimitPerUser int            `gorm:"not null;default:0" json:"usage_limit_per_user"`                     // 每人使用上限（0 表示不限制）
	TotalUsageLimit   int            `gorm:"not null;default:0" json:"total_usage_limit"`                        // 总使用上限（0 表示不限制）
	UsedCount         int            `gorm:"not null;default:0" json:"used_count"`                               // 已使用次数（只增不减）
	ExpiresAt         *time.Time     `gorm:"index" json:"expires_at"`                                            // 失效时间（空表示长期有效）
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                            // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                            // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                     // 软删除时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}

// IsExpired 判断是否已过期
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}
