package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车条目
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                         // 主键
	UserID    uint           `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`    // 用户ID
	ProductID uint           `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"` // 商品ID
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`                           // 数量
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	// 关联
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品信息
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
