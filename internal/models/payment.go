package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment 支付单表
type Payment struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                 // 主键
	OrderID    uint           `gorm:"not null;index" json:"order_id"`                       // 订单ID
	Provider   string         `gorm:"not null" json:"provider"`                             // 支付渠道 stripe
	SessionID  string         `gorm:"uniqueIndex;not null" json:"session_id"`               // 渠道会话ID
	Status     string         `gorm:"not null;index" json:"status"`                         // 支付状态
	Amount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`  // 支付金额
	Currency   string         `gorm:"type:varchar(10);not null" json:"currency"`            // 币种
	PayURL     string         `gorm:"type:text" json:"pay_url"`                             // 跳转支付链接
	SucceededAt *time.Time    `json:"succeeded_at"`                                         // 成功时间
	CreatedAt  time.Time      `json:"created_at"`                                           // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                           // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}
