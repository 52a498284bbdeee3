package repository

import (
	"errors"

	"github.com/wordmart/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	GetItem(userID, productID uint) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	UpdateQuantity(userID, productID uint, quantity int) error
	RemoveItem(userID, productID uint) error
	Clear(userID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车，预加载商品
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 获取购物车中的单条记录
func (r *GormCartRepository) GetItem(userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Upsert 新增或累加购物车条目
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	existing, err := r.GetItem(item.UserID, item.ProductID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(item).Error
	}
	return r.db.Model(&models.CartItem{}).
		Where("id = ?", existing.ID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
}

// UpdateQuantity 覆盖数量
func (r *GormCartRepository) UpdateQuantity(userID, productID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		UpdateColumn("quantity", quantity).Error
}

// RemoveItem 删除单条记录
func (r *GormCartRepository) RemoveItem(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{}).Error
}

// Clear 清空用户购物车
func (r *GormCartRepository) Clear(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
