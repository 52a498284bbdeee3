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

func setupCouponAdminServiceTest(t *testing.T) (*CouponAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_admin_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewCouponAdminService(repository.NewCouponRepository(db)), db
}

func TestCouponAdminCreateNormalizesCode(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)
	coupon, err := svc.Create(CouponInput{
		Code:          "  save10 ",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromFloat(10),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if coupon.Code != "SAVE10" {
		t.Fatalf("code want SAVE10, got %s", coupon.Code)
	}
	if !coupon.IsActive {
		t.Fatalf("new coupon should default to active")
	}
}

func TestCouponAdminCreateDuplicateCode(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)
	input := CouponInput{
		Code:          "SAVE10",
		DiscountType:  constants.DiscountTypeFlat,
		DiscountValue: models.NewMoneyFromFloat(5),
	}
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(input); !errors.Is(err, ErrCouponCodeTaken) {
		t.Fatalf("expected ErrCouponCodeTaken, got: %v", err)
	}
}

func TestCouponAdminCreateValidation(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)
	cases := []struct {
		name  string
		input CouponInput
		want  error
	}{
		{
			name:  "empty code",
			input: CouponInput{Code: "  ", DiscountType: constants.DiscountTypeFlat},
			want:  ErrCouponCodeRequired,
		},
		{
			name:  "percentage above 100",
			input: CouponInput{Code: "P", DiscountType: constants.DiscountTypePercentage, DiscountValue: models.NewMoneyFromFloat(120)},
			want:  ErrCouponValueInvalid,
		},
		{
			name:  "product specific without product",
			input: CouponInput{Code: "P", DiscountType: constants.DiscountTypeProductSpecific, DiscountValue: models.NewMoneyFromFloat(10)},
			want:  ErrCouponProductRequired,
		},
		{
			name:  "unknown type",
			input: CouponInput{Code: "P", DiscountType: "half-off", DiscountValue: models.NewMoneyFromFloat(10)},
			want:  ErrCouponTypeInvalid,
		},
	}
	for _, tc := range cases {
		if _, err := svc.Create(tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got: %v", tc.name, tc.want, err)
		}
	}
}

func TestCouponAdminUpdatePreservesUsedCount(t *testing.T) {
	svc, db := setupCouponAdminServiceTest(t)
	coupon, err := svc.Create(CouponInput{
		Code:          "SAVE10",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromFloat(10),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := db.Model(&models.Coupon{}).Where("id = ?", coupon.ID).Update("used_count", 3).Error; err != nil {
		t.Fatalf("seed used_count failed: %v", err)
	}

	updated, err := svc.Update(coupon.ID, CouponInput{
		Code:          "SAVE15",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromFloat(15),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Code != "SAVE15" {
		t.Fatalf("code want SAVE15, got %s", updated.Code)
	}
	if updated.UsedCount != 3 {
		t.Fatalf("used_count must survive update, got %d", updated.UsedCount)
	}
}

func TestCouponAdminDeleteMissing(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)
	if err := svc.Delete(999); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got: %v", err)
	}
}
