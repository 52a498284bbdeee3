package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/wordmart/internal/config"
	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/payment/stripe"
	"github.com/wordmart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testWebhookSecret = "whsec_test_secret"

func setupPaymentServiceTest(t *testing.T) (*PaymentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:payment_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.CartItem{},
		&models.Coupon{}, &models.CouponUsage{},
		&models.Order{}, &models.OrderItem{}, &models.Payment{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Order.Currency = "USD"
	cfg.Payment.Stripe.SecretKey = "sk_test_key"
	cfg.Payment.Stripe.WebhookSecret = testWebhookSecret
	cfg.Payment.Stripe.SuccessURL = "https://example.com/pay/success"
	cfg.Payment.Stripe.CancelURL = "https://example.com/pay/cancel"

	carts := repository.NewCartRepository(db)
	products := repository.NewProductRepository(db)
	cartSvc := NewCartService(carts, products)
	couponSvc := NewCouponService(db, repository.NewCouponRepository(db), repository.NewCouponUsageRepository(db))
	queueClt, err := newDisabledQueueClient()
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	orders := repository.NewOrderRepository(db)
	orderSvc := NewOrderService(db, cfg, orders, carts, cartSvc, couponSvc, queueClt)
	svc := NewPaymentService(cfg, repository.NewPaymentRepository(db), orders, orderSvc)
	return svc, db
}

func seedPendingOrderWithPayment(t *testing.T, db *gorm.DB, sessionID string) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID:         7,
		OrderNo:        "WM20260101120000123456",
		Status:         constants.OrderStatusPendingPayment,
		Currency:       "USD",
		SubtotalAmount: models.NewMoneyFromFloat(90),
		TotalAmount:    models.NewMoneyFromFloat(90),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	payment := &models.Payment{
		OrderID:   order.ID,
		Provider:  constants.PaymentProviderStripe,
		SessionID: sessionID,
		Status:    constants.PaymentStatusInitiated,
		Amount:    order.TotalAmount,
		Currency:  "USD",
		PayURL:    "https://checkout.stripe.com/c/pay/" + sessionID,
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	return order
}

func signedWebhook(t *testing.T, sessionID string, eventType string, now time.Time) (string, []byte) {
	t.Helper()
	payload := map[string]interface{}{
		"id":   "evt_test_1",
		"type": eventType,
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"object":         "checkout.session",
				"id":             sessionID,
				"payment_status": "paid",
				"currency":       "usd",
				"amount_total":   9000,
				"created":        now.Unix(),
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal webhook payload failed: %v", err)
	}
	sig := stripe.ComputeSignature(testWebhookSecret, now.Unix(), body)
	header := "t=" + strconv.FormatInt(now.Unix(), 10) + ",v1=" + sig
	return header, body
}

func TestHandleWebhookMarksOrderPaid(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrderWithPayment(t, db, "cs_test_abc")

	now := time.Now()
	header, body := signedWebhook(t, "cs_test_abc", "checkout.session.completed", now)
	if err := svc.HandleWebhook(header, body); err != nil {
		t.Fatalf("handle webhook failed: %v", err)
	}

	var payment models.Payment
	if err := db.Where("session_id = ?", "cs_test_abc").First(&payment).Error; err != nil {
		t.Fatalf("load payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusSuccess {
		t.Fatalf("payment status want success, got %s", payment.Status)
	}
	if payment.SucceededAt == nil {
		t.Fatalf("expected succeeded_at to be set")
	}

	var updated models.Order
	if err := db.First(&updated, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if updated.Status != constants.OrderStatusPaid {
		t.Fatalf("order status want paid, got %s", updated.Status)
	}
	if updated.PaidAt == nil {
		t.Fatalf("expected paid_at to be set")
	}

	// 重复投递同一事件应幂等
	if err := svc.HandleWebhook(header, body); err != nil {
		t.Fatalf("duplicate webhook failed: %v", err)
	}
	var count int64
	db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&count)
	if count != 1 {
		t.Fatalf("payment count want 1, got %d", count)
	}
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrderWithPayment(t, db, "cs_test_abc")

	now := time.Now()
	_, body := signedWebhook(t, "cs_test_abc", "checkout.session.completed", now)
	header := "t=" + strconv.FormatInt(now.Unix(), 10) + ",v1=deadbeef"
	if err := svc.HandleWebhook(header, body); !errors.Is(err, ErrWebhookSignature) {
		t.Fatalf("want ErrWebhookSignature, got %v", err)
	}

	var updated models.Order
	if err := db.First(&updated, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if updated.Status != constants.OrderStatusPendingPayment {
		t.Fatalf("order status should stay pending_payment, got %s", updated.Status)
	}
}

func TestHandleWebhookUnknownSessionIgnored(t *testing.T) {
	svc, _ := setupPaymentServiceTest(t)

	header, body := signedWebhook(t, "cs_test_missing", "checkout.session.completed", time.Now())
	if err := svc.HandleWebhook(header, body); err != nil {
		t.Fatalf("unknown session should be ignored, got %v", err)
	}
}

func TestHandleWebhookExpiredSession(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	seedPendingOrderWithPayment(t, db, "cs_test_exp")

	now := time.Now()
	payload := map[string]interface{}{
		"id":   "evt_test_2",
		"type": "checkout.session.expired",
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"object": "checkout.session",
				"id":     "cs_test_exp",
				"status": "expired",
			},
		},
	}
	body, _ := json.Marshal(payload)
	sig := stripe.ComputeSignature(testWebhookSecret, now.Unix(), body)
	header := "t=" + strconv.FormatInt(now.Unix(), 10) + ",v1=" + sig
	if err := svc.HandleWebhook(header, body); err != nil {
		t.Fatalf("handle webhook failed: %v", err)
	}

	var payment models.Payment
	if err := db.Where("session_id = ?", "cs_test_exp").First(&payment).Error; err != nil {
		t.Fatalf("load payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusExpired {
		t.Fatalf("payment status want expired, got %s", payment.Status)
	}
}

func TestCreatePaymentRequiresConfiguration(t *testing.T) {
	svc, _ := setupPaymentServiceTest(t)
	svc.client = stripe.NewClient(stripe.Config{})

	if _, err := svc.CreatePayment(nil, 7, 1); !errors.Is(err, ErrPaymentNotConfigured) {
		t.Fatalf("want ErrPaymentNotConfigured, got %v", err)
	}
}

func TestCreatePaymentReusesInitiatedSession(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrderWithPayment(t, db, "cs_test_reuse")

	result, err := svc.CreatePayment(nil, 7, order.ID)
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	if result.Payment.SessionID != "cs_test_reuse" {
		t.Fatalf("expected existing session to be reused, got %s", result.Payment.SessionID)
	}

	var count int64
	db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&count)
	if count != 1 {
		t.Fatalf("payment count want 1, got %d", count)
	}
}
