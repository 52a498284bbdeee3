package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}, &models.CouponUsage{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewCouponService(db, repository.NewCouponRepository(db), repository.NewCouponUsageRepository(db))
	return svc, db
}

func cartLine(productID uint, quantity int, unitPrice float64, wordCount *int) CartLine {
	unit := models.NewMoneyFromFloat(unitPrice)
	total := models.NewMoneyFromFloat(unitPrice * float64(quantity))
	return CartLine{
		ProductID:  productID,
		Title:      fmt.Sprintf("product-%d", productID),
		Quantity:   quantity,
		WordCount:  wordCount,
		UnitPrice:  unit,
		TotalPrice: total,
	}
}

func intPtr(v int) *int { return &v }

func TestCalculateDiscountPercentage(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		Code:              "SAVE10",
		IsActive:          true,
		DiscountType:      constants.DiscountTypePercentage,
		DiscountValue:     models.NewMoneyFromFloat(10),
		MinOrderAmount:    models.NewMoneyFromFloat(50),
		MaxDiscountAmount: models.NewMoneyFromFloat(20),
	}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 100, nil)}}

	result, err := svc.CalculateDiscount(coupon, cart)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if result.Discount.String() != "10.00" {
		t.Fatalf("discount want 10.00, got %s", result.Discount)
	}
	if result.FinalTotal.String() != "90.00" {
		t.Fatalf("final want 90.00, got %s", result.FinalTotal)
	}
}

func TestCalculateDiscountMinOrderAmount(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		Code:           "SAVE10",
		DiscountType:   constants.DiscountTypePercentage,
		DiscountValue:  models.NewMoneyFromFloat(10),
		MinOrderAmount: models.NewMoneyFromFloat(50),
	}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 40, nil)}}

	if _, err := svc.CalculateDiscount(coupon, cart); !errors.Is(err, ErrCouponMinAmount) {
		t.Fatalf("expected ErrCouponMinAmount, got: %v", err)
	}
}

func TestCalculateDiscountPercentageCap(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		DiscountType:      constants.DiscountTypePercentage,
		DiscountValue:     models.NewMoneyFromFloat(10),
		MaxDiscountAmount: models.NewMoneyFromFloat(5),
	}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 100, nil)}}

	result, err := svc.CalculateDiscount(coupon, cart)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if result.Discount.String() != "5.00" {
		t.Fatalf("capped discount want 5.00, got %s", result.Discount)
	}
}

func TestCalculateDiscountFlatNotCapped(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		DiscountType:      constants.DiscountTypeFlat,
		DiscountValue:     models.NewMoneyFromFloat(30),
		MaxDiscountAmount: models.NewMoneyFromFloat(10),
	}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 100, nil)}}

	result, err := svc.CalculateDiscount(coupon, cart)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	// 固定金额不受最大优惠约束
	if result.Discount.String() != "30.00" {
		t.Fatalf("flat discount want 30.00, got %s", result.Discount)
	}
	if result.FinalTotal.String() != "70.00" {
		t.Fatalf("final want 70.00, got %s", result.FinalTotal)
	}
}

func TestCalculateDiscountFlatNeverNegative(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		DiscountType:  constants.DiscountTypeFlat,
		DiscountValue: models.NewMoneyFromFloat(50),
	}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 20, nil)}}

	result, err := svc.CalculateDiscount(coupon, cart)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if result.FinalTotal.String() != "0.00" {
		t.Fatalf("final want 0.00, got %s", result.FinalTotal)
	}
}

func TestCalculateDiscountFullOffPicksCheapestEligible(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromFloat(100),
		MaxWordCount:  1000,
	}
	cart := CartSnapshot{Lines: []CartLine{
		cartLine(1, 1, 30, intPtr(2000)), // 超字数，不参与
		cartLine(2, 1, 50, intPtr(800)),
		cartLine(3, 1, 40, nil), // 未设置字数视为合格
	}}

	result, err := svc.CalculateDiscount(coupon, cart)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if result.AppliedToProductID == nil || *result.AppliedToProductID != 3 {
		t.Fatalf("applied_to want product 3, got %+v", result.AppliedToProductID)
	}
	if result.Discount.String() != "40.00" {
		t.Fatalf("discount want 40.00, got %s", result.Discount)
	}
	if result.FinalTotal.String() != "80.00" {
		t.Fatalf("final want 80.00, got %s", result.FinalTotal)
	}
	if result.Message == "" {
		t.Fatalf("expected message naming the free product")
	}
}

func TestCalculateDiscountFullOffQuantityMustBeOne(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromFloat(100),
	}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 2, 25, nil)}}

	if _, err := svc.CalculateDiscount(coupon, cart); !errors.Is(err, ErrCouponSingleItemOnly) {
		t.Fatalf("expected ErrCouponSingleItemOnly, got: %v", err)
	}
}

func TestCalculateDiscountFullOffWordCountExcludesAll(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromFloat(100),
		MaxWordCount:  500,
	}
	cart := CartSnapshot{Lines: []CartLine{
		cartLine(1, 1, 30, intPtr(800)),
		cartLine(2, 1, 50, intPtr(1200)),
	}}

	if _, err := svc.CalculateDiscount(coupon, cart); !errors.Is(err, ErrCouponWordCountExceeded) {
		t.Fatalf("expected ErrCouponWordCountExceeded, got: %v", err)
	}
}

func TestCalculateDiscountProductSpecific(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	productID := uint(2)
	coupon := &models.Coupon{
		DiscountType:      constants.DiscountTypeProductSpecific,
		DiscountValue:     models.NewMoneyFromFloat(50),
		SpecificProductID: &productID,
	}

	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 100, nil)}}
	if _, err := svc.CalculateDiscount(coupon, cart); !errors.Is(err, ErrCouponProductRequired) {
		t.Fatalf("expected ErrCouponProductRequired, got: %v", err)
	}

	cart = CartSnapshot{Lines: []CartLine{cartLine(1, 1, 100, nil), cartLine(2, 2, 20, nil)}}
	result, err := svc.CalculateDiscount(coupon, cart)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if result.Discount.String() != "20.00" {
		t.Fatalf("discount want 20.00 (50%% of 40), got %s", result.Discount)
	}
	if result.AppliedToProductID == nil || *result.AppliedToProductID != 2 {
		t.Fatalf("applied_to want product 2, got %+v", result.AppliedToProductID)
	}
}

func TestCalculateDiscountQuantityBased(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		DiscountType:  constants.DiscountTypeQuantityBased,
		DiscountValue: models.NewMoneyFromFloat(15),
		MinQuantity:   3,
	}

	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 2, 10, nil)}}
	if _, err := svc.CalculateDiscount(coupon, cart); !errors.Is(err, ErrCouponMinQuantity) {
		t.Fatalf("expected ErrCouponMinQuantity, got: %v", err)
	}

	cart = CartSnapshot{Lines: []CartLine{cartLine(1, 3, 10, nil), cartLine(2, 1, 70, nil)}}
	result, err := svc.CalculateDiscount(coupon, cart)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if result.Discount.String() != "15.00" {
		t.Fatalf("discount want 15.00 (15%% of 100), got %s", result.Discount)
	}
}

func TestCalculateDiscountUnknownType(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{DiscountType: "bogus", DiscountValue: models.NewMoneyFromFloat(10)}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 100, nil)}}

	if _, err := svc.CalculateDiscount(coupon, cart); !errors.Is(err, ErrCouponTypeInvalid) {
		t.Fatalf("expected ErrCouponTypeInvalid, got: %v", err)
	}
}

func TestPreviewDiscountDoesNotTouchCounters(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := models.Coupon{
		Code:            "SAVE10",
		IsActive:        true,
		DiscountType:    constants.DiscountTypePercentage,
		DiscountValue:   models.NewMoneyFromFloat(10),
		TotalUsageLimit: 1,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 100, nil)}}

	for i := 0; i < 3; i++ {
		result, err := svc.PreviewDiscount("save10", cart)
		if err != nil {
			t.Fatalf("preview %d failed: %v", i, err)
		}
		if result.Discount.String() != "10.00" {
			t.Fatalf("preview discount want 10.00, got %s", result.Discount)
		}
	}

	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("preview must not consume usage, used_count=%d", reloaded.UsedCount)
	}
	var usageRows int64
	db.Model(&models.CouponUsage{}).Count(&usageRows)
	if usageRows != 0 {
		t.Fatalf("preview must not create usage rows, got %d", usageRows)
	}
}

func TestPreviewDiscountEmptyCart(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	if _, err := svc.PreviewDiscount("SAVE10", CartSnapshot{}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got: %v", err)
	}
}

func TestPreviewDiscountEmptyCode(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 60, nil)}}

	result, err := svc.PreviewDiscount("", cart)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if result.Discount.String() != "0.00" || result.FinalTotal.String() != "60.00" {
		t.Fatalf("empty code want zero discount, got %+v", result)
	}
}

func TestPreviewDiscountInvalidCoupon(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	expired := time.Now().Add(-time.Hour)
	coupons := []models.Coupon{
		{Code: "GONE", IsActive: false, DiscountType: constants.DiscountTypeFlat, DiscountValue: models.NewMoneyFromFloat(5)},
		{Code: "OLD", IsActive: true, DiscountType: constants.DiscountTypeFlat, DiscountValue: models.NewMoneyFromFloat(5), ExpiresAt: &expired},
	}
	for i := range coupons {
		if err := db.Create(&coupons[i]).Error; err != nil {
			t.Fatalf("create coupon failed: %v", err)
		}
	}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 60, nil)}}

	for _, code := range []string{"MISSING", "GONE", "OLD"} {
		if _, err := svc.PreviewDiscount(code, cart); !errors.Is(err, ErrCouponNotFound) {
			t.Fatalf("code %s: expected ErrCouponNotFound, got: %v", code, err)
		}
	}
}

func TestApplyCouponIncrementsCounters(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := models.Coupon{
		Code:          "SAVE10",
		IsActive:      true,
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromFloat(10),
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 100, nil)}}

	result, applied, err := svc.ApplyCoupon("SAVE10", cart, 7)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if applied == nil || applied.ID != coupon.ID {
		t.Fatalf("expected applied coupon, got %+v", applied)
	}
	if result.FinalTotal.String() != "90.00" {
		t.Fatalf("final want 90.00, got %s", result.FinalTotal)
	}

	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.UsedCount != 1 {
		t.Fatalf("used_count want 1, got %d", reloaded.UsedCount)
	}
	var usage models.CouponUsage
	if err := db.Where("coupon_id = ? AND user_id = ?", coupon.ID, 7).First(&usage).Error; err != nil {
		t.Fatalf("load usage failed: %v", err)
	}
	if usage.UsageCount != 1 {
		t.Fatalf("usage_count want 1, got %d", usage.UsageCount)
	}

	// 第二次使用在无上限时继续累加
	if _, _, err := svc.ApplyCoupon("SAVE10", cart, 7); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.UsedCount != 2 {
		t.Fatalf("used_count want 2, got %d", reloaded.UsedCount)
	}
}

func TestApplyCouponTotalLimitExhausted(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := models.Coupon{
		Code:            "ONCE",
		IsActive:        true,
		DiscountType:    constants.DiscountTypeFlat,
		DiscountValue:   models.NewMoneyFromFloat(5),
		TotalUsageLimit: 1,
		UsedCount:       1,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 60, nil)}}

	if _, _, err := svc.ApplyCoupon("ONCE", cart, 7); !errors.Is(err, ErrCouponUsageLimit) {
		t.Fatalf("expected ErrCouponUsageLimit, got: %v", err)
	}

	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.UsedCount != 1 {
		t.Fatalf("failed apply must not move counters, used_count=%d", reloaded.UsedCount)
	}
}

func TestApplyCouponPerUserLimit(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := models.Coupon{
		Code:              "PERUSER",
		IsActive:          true,
		DiscountType:      constants.DiscountTypeFlat,
		DiscountValue:     models.NewMoneyFromFloat(5),
		UsageLimitPerUser: 1,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 60, nil)}}

	if _, _, err := svc.ApplyCoupon("PERUSER", cart, 7); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	if _, _, err := svc.ApplyCoupon("PERUSER", cart, 7); !errors.Is(err, ErrCouponPerUserLimit) {
		t.Fatalf("expected ErrCouponPerUserLimit, got: %v", err)
	}

	// 其他用户不受影响
	if _, _, err := svc.ApplyCoupon("PERUSER", cart, 8); err != nil {
		t.Fatalf("other user apply failed: %v", err)
	}
}

func TestApplyCouponEmptyCode(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 60, nil)}}

	result, applied, err := svc.ApplyCoupon("", cart, 7)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if applied != nil {
		t.Fatalf("empty code must not resolve a coupon")
	}
	if result.FinalTotal.String() != "60.00" || result.Discount.String() != "0.00" {
		t.Fatalf("empty code want passthrough totals, got %+v", result)
	}
}

func TestApplyCouponCodeNormalized(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := models.Coupon{
		Code:          "SAVE10",
		IsActive:      true,
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromFloat(10),
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	cart := CartSnapshot{Lines: []CartLine{cartLine(1, 1, 100, nil)}}

	if _, _, err := svc.ApplyCoupon("  save10 ", cart, 7); err != nil {
		t.Fatalf("normalized code apply failed: %v", err)
	}
}
