package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartLine 参与折扣计算的购物车行快照
type CartLine struct {
	ProductID  uint         `json:"product_id"`
	Title      string       `json:"title"`
	Quantity   int          `json:"quantity"`
	WordCount  *int         `json:"word_count"`
	UnitPrice  models.Money `json:"unit_price"`
	TotalPrice models.Money `json:"total_price"`
}

// CartSnapshot 购物车快照，折扣引擎的唯一输入
type CartSnapshot struct {
	Lines []CartLine `json:"lines"`
}

// Total 购物车合计（各行小计之和）
func (s CartSnapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.Lines {
		total = total.Add(line.TotalPrice.Decimal)
	}
	return total
}

// DiscountResult 折扣计算结果
type DiscountResult struct {
	OriginalTotal      models.Money `json:"original_total"`
	Discount           models.Money `json:"coupon_discount"`
	FinalTotal         models.Money `json:"final_price"`
	AppliedToProductID *uint        `json:"applied_to,omitempty"`
	Message            string       `json:"message,omitempty"`
}

// CouponService 优惠券业务
type CouponService struct {
	db      *gorm.DB
	coupons repository.CouponRepository
	usages  repository.CouponUsageRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(db *gorm.DB, coupons repository.CouponRepository, usages repository.CouponUsageRepository) *CouponService {
	return &CouponService{db: db, coupons: coupons, usages: usages}
}

var decimalHundred = decimal.NewFromInt(100)

// CalculateDiscount 纯计算，不做任何 I/O，也不修改输入。
// 类型判定顺序：100% 全免特例、百分比、固定金额、指定商品、数量门槛。
func (s *CouponService) CalculateDiscount(coupon *models.Coupon, cart CartSnapshot) (DiscountResult, error) {
	total := cart.Total()
	result := DiscountResult{
		OriginalTotal: models.NewMoneyFromDecimal(total),
	}

	// 100% 全免：只作用于单个符合条件的条目
	if coupon.DiscountType == constants.DiscountTypePercentage && coupon.DiscountValue.Decimal.Equal(decimalHundred) {
		return s.calculateFullDiscount(coupon, cart, total)
	}

	var discount decimal.Decimal
	switch coupon.DiscountType {
	case constants.DiscountTypePercentage:
		if total.LessThan(coupon.MinOrderAmount.Decimal) {
			return result, ErrCouponMinAmount
		}
		discount = percentOf(total, coupon.DiscountValue.Decimal)
		discount = capDiscount(discount, coupon.MaxDiscountAmount.Decimal)

	case constants.DiscountTypeFlat:
		if total.LessThan(coupon.MinOrderAmount.Decimal) {
			return result, ErrCouponMinAmount
		}
		// 固定金额不受 max_discount_amount 约束
		discount = coupon.DiscountValue.Decimal

	case constants.DiscountTypeProductSpecific:
		if coupon.SpecificProductID == nil {
			return result, ErrCouponProductRequired
		}
		line, ok := findLineByProduct(cart, *coupon.SpecificProductID)
		if !ok {
			return result, ErrCouponProductRequired
		}
		discount = percentOf(line.TotalPrice.Decimal, coupon.DiscountValue.Decimal)
		result.AppliedToProductID = &line.ProductID

	case constants.DiscountTypeQuantityBased:
		minQuantity := coupon.MinQuantity
		if minQuantity <= 0 {
			minQuantity = 1
		}
		if !hasLineWithQuantity(cart, minQuantity) {
			return result, ErrCouponMinQuantity
		}
		discount = percentOf(total, coupon.DiscountValue.Decimal)
		discount = capDiscount(discount, coupon.MaxDiscountAmount.Decimal)

	default:
		return result, ErrCouponTypeInvalid
	}

	final := total.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	result.Discount = models.NewMoneyFromDecimal(discount)
	result.FinalTotal = models.NewMoneyFromDecimal(final)
	return result, nil
}

// calculateFullDiscount 100% 折扣：在符合字数上限的条目中选最便宜的一条全免，
// 该条目数量必须为 1。
func (s *CouponService) calculateFullDiscount(coupon *models.Coupon, cart CartSnapshot, total decimal.Decimal) (DiscountResult, error) {
	result := DiscountResult{
		OriginalTotal: models.NewMoneyFromDecimal(total),
	}

	var chosen *CartLine
	excludedByWordCount := false
	for i := range cart.Lines {
		line := &cart.Lines[i]
		if coupon.MaxWordCount > 0 && line.WordCount != nil && *line.WordCount > coupon.MaxWordCount {
			excludedByWordCount = true
			continue
		}
		// 同价取先出现的条目
		if chosen == nil || line.TotalPrice.Decimal.LessThan(chosen.TotalPrice.Decimal) {
			chosen = line
		}
	}
	if chosen == nil {
		if excludedByWordCount {
			return result, ErrCouponWordCountExceeded
		}
		return result, ErrCouponNoEligibleItems
	}
	if chosen.Quantity != 1 {
		return result, ErrCouponSingleItemOnly
	}

	discount := chosen.TotalPrice.Decimal
	final := total.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	result.Discount = models.NewMoneyFromDecimal(discount)
	result.FinalTotal = models.NewMoneyFromDecimal(final)
	result.AppliedToProductID = &chosen.ProductID
	result.Message = fmt.Sprintf("Coupon applied: %s is free", chosen.Title)
	return result, nil
}

// PreviewDiscount 无状态试算：只做查券与计算，不校验也不消耗使用次数。
func (s *CouponService) PreviewDiscount(code string, cart CartSnapshot) (DiscountResult, error) {
	if len(cart.Lines) == 0 {
		return DiscountResult{}, ErrCartEmpty
	}
	total := cart.Total()

	normalized := normalizeCouponCode(code)
	if normalized == "" {
		return zeroDiscountResult(total), nil
	}

	coupon, err := s.lookupValidCoupon(normalized)
	if err != nil {
		return DiscountResult{OriginalTotal: models.NewMoneyFromDecimal(total)}, err
	}

	result, err := s.CalculateDiscount(coupon, cart)
	if err != nil {
		return result, err
	}
	if result.Message == "" {
		result.Message = fmt.Sprintf("Coupon %s applied", coupon.Code)
	}
	return result, nil
}

// ApplyCoupon 结算提交：校验限额、计算折扣并在事务内原子提交使用次数。
// code 为空时直接返回零折扣结果，不查库。
func (s *CouponService) ApplyCoupon(code string, cart CartSnapshot, userID uint) (DiscountResult, *models.Coupon, error) {
	var result DiscountResult
	var coupon *models.Coupon
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, coupon, err = s.ApplyCouponInTx(tx, code, cart, userID)
		return err
	})
	if err != nil {
		return result, nil, err
	}
	return result, coupon, nil
}

// ApplyCouponInTx 在调用方事务内执行结算提交，订单结算复用。
func (s *CouponService) ApplyCouponInTx(tx *gorm.DB, code string, cart CartSnapshot, userID uint) (DiscountResult, *models.Coupon, error) {
	if len(cart.Lines) == 0 {
		return DiscountResult{}, nil, ErrCartEmpty
	}
	total := cart.Total()

	normalized := normalizeCouponCode(code)
	if normalized == "" {
		return zeroDiscountResult(total), nil, nil
	}

	coupon, err := s.lookupValidCoupon(normalized)
	if err != nil {
		return DiscountResult{OriginalTotal: models.NewMoneyFromDecimal(total)}, nil, err
	}

	// 先做快路径限额检查，真正的判定由条件更新保证
	if coupon.UsageLimitPerUser > 0 {
		usage, err := s.usages.GetByCouponAndUser(coupon.ID, userID)
		if err != nil {
			return DiscountResult{}, nil, err
		}
		if usage != nil && usage.UsageCount >= coupon.UsageLimitPerUser {
			return DiscountResult{}, nil, ErrCouponPerUserLimit
		}
	}
	if coupon.TotalUsageLimit > 0 && coupon.UsedCount >= coupon.TotalUsageLimit {
		return DiscountResult{}, nil, ErrCouponUsageLimit
	}

	result, err := s.CalculateDiscount(coupon, cart)
	if err != nil {
		return result, nil, err
	}
	if result.Message == "" {
		result.Message = fmt.Sprintf("Coupon %s applied", coupon.Code)
	}

	if err := s.coupons.ApplyUsage(tx, coupon, userID); err != nil {
		switch err {
		case repository.ErrUsageLimitReached:
			return result, nil, ErrCouponUsageLimit
		case repository.ErrPerUserLimitReached:
			return result, nil, ErrCouponPerUserLimit
		default:
			return result, nil, err
		}
	}
	return result, coupon, nil
}

// lookupValidCoupon 查询启用且未过期的优惠券，查不到统一返回 ErrCouponNotFound。
func (s *CouponService) lookupValidCoupon(code string) (*models.Coupon, error) {
	coupon, err := s.coupons.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil || !coupon.IsActive || coupon.IsExpired(time.Now()) {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func zeroDiscountResult(total decimal.Decimal) DiscountResult {
	return DiscountResult{
		OriginalTotal: models.NewMoneyFromDecimal(total),
		Discount:      models.NewMoneyFromDecimal(decimal.Zero),
		FinalTotal:    models.NewMoneyFromDecimal(total),
	}
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(decimalHundred)
}

func capDiscount(discount, max decimal.Decimal) decimal.Decimal {
	if max.IsPositive() && discount.GreaterThan(max) {
		return max
	}
	return discount
}

func findLineByProduct(cart CartSnapshot, productID uint) (*CartLine, bool) {
	for i := range cart.Lines {
		if cart.Lines[i].ProductID == productID {
			return &cart.Lines[i], true
		}
	}
	return nil, false
}

func hasLineWithQuantity(cart CartSnapshot, minQuantity int) bool {
	for _, line := range cart.Lines {
		if line.Quantity >= minQuantity {
			return true
		}
	}
	return false
}
