package repository

import (
	"errors"

	"github.com/wordmart/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository 支付单数据访问接口
type PaymentRepository interface {
	GetByID(id uint) (*models.Payment, error)
	GetBySessionID(sessionID string) (*models.Payment, error)
	GetLatestByOrderID(orderID uint) (*models.Payment, error)
	Create(payment *models.Payment) error
	Update(payment *models.Payment) error
	WithTx(tx *gorm.DB) *GormPaymentRepository
}

// GormPaymentRepository GORM 实现
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建支付单仓库
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// GetByID 根据ID获取支付单
func (r *GormPaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetBySessionID 根据渠道会话ID获取支付单
func (r *GormPaymentRepository) GetBySessionID(sessionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("session_id = ?", sessionID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetLatestByOrderID 获取订单最近一笔支付单
func (r *GormPaymentRepository) GetLatestByOrderID(orderID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("order_id = ?", orderID).Order("id desc").First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// Create 创建支付单
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// Update 更新支付单
func (r *GormPaymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}
