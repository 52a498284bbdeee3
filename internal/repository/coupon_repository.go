package repository

import (
	"errors"
	"time"

	"github.com/wordmart/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 使用次数提交阶段的冲突错误，由条件更新的影响行数判定
var (
	ErrUsageLimitReached   = errors.New("coupon total usage limit reached")
	ErrPerUserLimitReached = errors.New("coupon per-user usage limit reached")
)

// CouponRepository 优惠券数据访问接口
type CouponRepository interface {
	GetByID(id uint) (*models.Coupon, error)
	GetByCode(code string) (*models.Coupon, error)
	Create(coupon *models.Coupon) error
	Update(coupon *models.Coupon) error
	Delete(id uint) error
	List(filter CouponListFilter) ([]models.Coupon, int64, error)
	ApplyUsage(tx *gorm.DB, coupon *models.Coupon, userID uint) error
	WithTx(tx *gorm.DB) *GormCouponRepository
}

// CouponListFilter 优惠券列表筛选
type CouponListFilter struct {
	ID       uint
	Code     string
	IsActive *bool
	Page     int
	PageSize int
}

// GormCouponRepository GORM 实现
type GormCouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠券仓库
func NewCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCouponRepository) WithTx(tx *gorm.DB) *GormCouponRepository {
	if tx == nil {
		return r
	}
	return &GormCouponRepository{db: tx}
}

// GetByID 根据ID获取优惠券
func (r *GormCouponRepository) GetByID(id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetByCode 根据优惠码获取优惠券
func (r *GormCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// Create 创建优惠券
func (r *GormCouponRepository) Create(coupon *models.Coupon) error {
	return r.db.Create(coupon).Error
}

// Update 更新优惠券
func (r *GormCouponRepository) Update(coupon *models.Coupon) error {
	return r.db.Save(coupon).Error
}

// Delete 删除优惠券
func (r *GormCouponRepository) Delete(id uint) error {
	return r.db.Delete(&models.Coupon{}, id).Error
}

// List 获取优惠券列表
func (r *GormCouponRepository) List(filter CouponListFilter) ([]models.Coupon, int64, error) {
	var coupons []models.Coupon
	query := r.db.Model(&models.Coupon{})

	if filter.ID > 0 {
		query = query.Where("id = ?", filter.ID)
	}
	if filter.Code != "" {
		query = query.Where("code = ?", filter.Code)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&coupons).Error; err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

// ApplyUsage 在同一事务内提交一次使用：
// 先按总限额条件递增 used_count，再按单用户限额条件递增使用记录。
// 任一条件更新影响行数为 0 即视为限额已满，由调用方回滚整个事务。
func (r *GormCouponRepository) ApplyUsage(tx *gorm.DB, coupon *models.Coupon, userID uint) error {
	db := r.db
	if tx != nil {
		db = tx
	}

	// 总量限额：total_usage_limit 为 0 表示不限
	res := db.Model(&models.Coupon{}).
		Where("id = ?", coupon.ID).
		Where("total_usage_limit = 0 OR used_count < total_usage_limit").
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUsageLimitReached
	}

	// 单用户限额：条件 upsert，一条语句覆盖首次插入与后续递增。
	// 并发首次使用时后到的一方原子落在更新分支而不是撞唯一索引，
	// 已达上限时更新条件不满足，影响行数为 0。
	usage := models.CouponUsage{
		CouponID:   coupon.ID,
		UserID:     userID,
		UsageCount: 1,
	}
	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "coupon_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"usage_count": gorm.Expr("coupon_usages.usage_count + 1"),
			"updated_at":  time.Now(),
		}),
	}
	if coupon.UsageLimitPerUser > 0 {
		onConflict.Where = clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "coupon_usages.usage_count < ?", Vars: []interface{}{coupon.UsageLimitPerUser}},
		}}
	}
	res = db.Clauses(onConflict).Create(&usage)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPerUserLimitReached
	}
	return nil
}
