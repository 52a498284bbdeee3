package models

import "time"

// OrderItem 订单项表，保存下单时的商品快照
type OrderItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                        // 主键
	OrderID    uint      `gorm:"not null;index" json:"order_id"`                              // 订单ID
	ProductID  uint      `gorm:"not null;index" json:"product_id"`                            // 商品ID
	Title      string    `gorm:"not null" json:"title"`                                       // 商品标题快照
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`                          // 数量
	UnitPrice  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`     // 单价快照
	TotalPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`    // 行小计
	WordCount  *int      `json:"word_count"`                                                  // 字数快照，服务类商品使用
	CreatedAt  time.Time `json:"created_at"`                                                  // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                                  // 更新时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
