package service

import (
	"time"

	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"
)

// CouponInput 后台创建/更新优惠券的入参
type CouponInput struct {
	Code              string        `json:"code" binding:"required"`
	IsActive          *bool         `json:"is_active"`
	DiscountType      string        `json:"discount_type" binding:"required"`
	DiscountValue     models.Money  `json:"discount_value"`
	MinOrderAmount    models.Money  `json:"min_order_amount"`
	MaxDiscountAmount models.Money  `json:"max_discount_amount"`
	SpecificProductID *uint         `json:"specific_product_id"`
	MinQuantity       int           `json:"min_quantity"`
	MaxWordCount      int           `json:"max_word_count"`
	UsageLimitPerUser int           `json:"usage_limit_per_user"`
	TotalUsageLimit   int           `json:"total_usage_limit"`
	ExpiresAt         *time.Time    `json:"expires_at"`
}

// CouponAdminService 后台优惠券管理
type CouponAdminService struct {
	coupons repository.CouponRepository
}

// NewCouponAdminService 创建后台优惠券服务
func NewCouponAdminService(coupons repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{coupons: coupons}
}

// Create 创建优惠券
func (s *CouponAdminService) Create(input CouponInput) (*models.Coupon, error) {
	if err := validateCouponInput(&input); err != nil {
		return nil, err
	}
	existing, err := s.coupons.GetByCode(normalizeCouponCode(input.Code))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponCodeTaken
	}

	coupon := models.Coupon{
		Code:              normalizeCouponCode(input.Code),
		IsActive:          true,
		DiscountType:      input.DiscountType,
		DiscountValue:     input.DiscountValue,
		MinOrderAmount:    input.MinOrderAmount,
		MaxDiscountAmount: input.MaxDiscountAmount,
		SpecificProductID: input.SpecificProductID,
		MinQuantity:       input.MinQuantity,
		MaxWordCount:      input.MaxWordCount,
		UsageLimitPerUser: input.UsageLimitPerUser,
		TotalUsageLimit:   input.TotalUsageLimit,
		ExpiresAt:         input.ExpiresAt,
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if err := s.coupons.Create(&coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Update 更新优惠券（不允许回拨 used_count）
func (s *CouponAdminService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	if err := validateCouponInput(&input); err != nil {
		return nil, err
	}
	coupon, err := s.coupons.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	normalized := normalizeCouponCode(input.Code)
	if normalized != coupon.Code {
		existing, err := s.coupons.GetByCode(normalized)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != coupon.ID {
			return nil, ErrCouponCodeTaken
		}
		coupon.Code = normalized
	}

	coupon.DiscountType = input.DiscountType
	coupon.DiscountValue = input.DiscountValue
	coupon.MinOrderAmount = input.MinOrderAmount
	coupon.MaxDiscountAmount = input.MaxDiscountAmount
	coupon.SpecificProductID = input.SpecificProductID
	coupon.MinQuantity = input.MinQuantity
	coupon.MaxWordCount = input.MaxWordCount
	coupon.UsageLimitPerUser = input.UsageLimitPerUser
	coupon.TotalUsageLimit = input.TotalUsageLimit
	coupon.ExpiresAt = input.ExpiresAt
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}

	if err := s.coupons.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete 删除优惠券
func (s *CouponAdminService) Delete(id uint) error {
	coupon, err := s.coupons.GetByID(id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrCouponNotFound
	}
	return s.coupons.Delete(id)
}

// Get 获取优惠券详情
func (s *CouponAdminService) Get(id uint) (*models.Coupon, error) {
	coupon, err := s.coupons.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// List 获取优惠券列表
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.coupons.List(filter)
}

// validateCouponInput 校验入参
func validateCouponInput(input *CouponInput) error {
	if normalizeCouponCode(input.Code) == "" {
		return ErrCouponCodeRequired
	}
	if input.DiscountValue.Decimal.IsNegative() {
		return ErrCouponValueInvalid
	}
	switch input.DiscountType {
	case constants.DiscountTypePercentage, constants.DiscountTypeQuantityBased:
		if input.DiscountValue.Decimal.GreaterThan(decimalHundred) {
			return ErrCouponValueInvalid
		}
	case constants.DiscountTypeFlat:
		// 金额类不限上限
	case constants.DiscountTypeProductSpecific:
		if input.SpecificProductID == nil || *input.SpecificProductID == 0 {
			return ErrCouponProductRequired
		}
		if input.DiscountValue.Decimal.GreaterThan(decimalHundred) {
			return ErrCouponValueInvalid
		}
	default:
		return ErrCouponTypeInvalid
	}
	return nil
}
