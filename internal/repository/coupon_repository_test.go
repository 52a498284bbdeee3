package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCouponRepositoryTest(t *testing.T) (*GormCouponRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_repository_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}, &models.CouponUsage{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewCouponRepository(db), db
}

func createUsageTestCoupon(t *testing.T, db *gorm.DB, perUser, total int) *models.Coupon {
	t.Helper()
	coupon := models.Coupon{
		Code:              fmt.Sprintf("USAGE%d%d", perUser, total),
		IsActive:          true,
		DiscountType:      constants.DiscountTypePercentage,
		DiscountValue:     models.NewMoneyFromFloat(10),
		UsageLimitPerUser: perUser,
		TotalUsageLimit:   total,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return &coupon
}

func usageCount(t *testing.T, db *gorm.DB, couponID, userID uint) int {
	t.Helper()
	var usage models.CouponUsage
	if err := db.Where("coupon_id = ? AND user_id = ?", couponID, userID).First(&usage).Error; err != nil {
		t.Fatalf("load usage failed: %v", err)
	}
	return usage.UsageCount
}

func TestApplyUsageFirstUseInsertsRow(t *testing.T) {
	repo, db := setupCouponRepositoryTest(t)
	coupon := createUsageTestCoupon(t, db, 0, 0)

	if err := repo.ApplyUsage(nil, coupon, 9); err != nil {
		t.Fatalf("first use failed: %v", err)
	}
	if got := usageCount(t, db, coupon.ID, 9); got != 1 {
		t.Fatalf("usage count want 1, got %d", got)
	}
	if err := repo.ApplyUsage(nil, coupon, 9); err != nil {
		t.Fatalf("second use failed: %v", err)
	}
	if got := usageCount(t, db, coupon.ID, 9); got != 2 {
		t.Fatalf("usage count want 2, got %d", got)
	}
}

func TestApplyUsagePerUserLimitViaConflictBranch(t *testing.T) {
	repo, db := setupCouponRepositoryTest(t)
	coupon := createUsageTestCoupon(t, db, 1, 0)

	// 两次提交走同一条 upsert 语句：第一次插入，第二次落在冲突更新分支，
	// 条件不满足时不得报唯一索引冲突，而是按限额拒绝
	if err := repo.ApplyUsage(nil, coupon, 5); err != nil {
		t.Fatalf("first use failed: %v", err)
	}
	if err := repo.ApplyUsage(nil, coupon, 5); !errors.Is(err, ErrPerUserLimitReached) {
		t.Fatalf("expected ErrPerUserLimitReached, got: %v", err)
	}
	if got := usageCount(t, db, coupon.ID, 5); got != 1 {
		t.Fatalf("usage count should stay 1, got %d", got)
	}
}

func TestApplyUsageTotalLimit(t *testing.T) {
	repo, db := setupCouponRepositoryTest(t)
	coupon := createUsageTestCoupon(t, db, 0, 1)

	if err := repo.ApplyUsage(nil, coupon, 1); err != nil {
		t.Fatalf("first use failed: %v", err)
	}
	if err := repo.ApplyUsage(nil, coupon, 2); !errors.Is(err, ErrUsageLimitReached) {
		t.Fatalf("expected ErrUsageLimitReached, got: %v", err)
	}

	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.UsedCount != 1 {
		t.Fatalf("used_count want 1, got %d", reloaded.UsedCount)
	}
}
