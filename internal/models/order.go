package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                              // 主键
	OrderNo           string         `gorm:"uniqueIndex;not null" json:"order_no"`                              // 订单号
	UserID            uint           `gorm:"not null;index" json:"user_id"`                                     // 用户ID
	Status            string         `gorm:"not null;index" json:"status"`                                      // 订单状态
	Currency          string         `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`           // 币种
	SubtotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal_amount"`      // 商品小计
	CouponID          *uint          `gorm:"index" json:"coupon_id"`                                            // 使用的优惠券ID
	CouponCode        string         `gorm:"default:''" json:"coupon_code"`                                     // 使用的优惠码快照
	CouponDiscount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"coupon_discount"`      // 优惠金额
	DiscountProductID *uint          `json:"discount_product_id"`                                               // 优惠指向的商品（仅部分券类型）
	TotalAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`         // 应付金额
	PaidAt            *time.Time     `json:"paid_at"`                                                           // 支付时间
	CanceledAt        *time.Time     `json:"canceled_at"`                                                       // 取消时间
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                           // 创建时间
	UpdatedAt         time.Time      `json:"updated_at"`                                                        // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                    // 软删除时间

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
