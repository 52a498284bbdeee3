package stripe

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"
)

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{
		SecretKey:     " sk_test_123 ",
		WebhookSecret: " whsec_123 ",
		SuccessURL:    "https://example.com/pay/success",
		CancelURL:     "https://example.com/pay/cancel",
	})
	if client.cfg.SecretKey != "sk_test_123" {
		t.Fatalf("unexpected secret key: %s", client.cfg.SecretKey)
	}
	if client.cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("unexpected default api base url: %s", client.cfg.APIBaseURL)
	}
	if client.cfg.WebhookToleranceSeconds != defaultWebhookToleranceS {
		t.Fatalf("unexpected tolerance: %d", client.cfg.WebhookToleranceSeconds)
	}
	if !client.Configured() {
		t.Fatalf("expected client to be configured")
	}
	if NewClient(Config{}).Configured() {
		t.Fatalf("expected empty config to be unconfigured")
	}
}

func TestVerifyAndParseWebhookCheckoutCompleted(t *testing.T) {
	now := time.Unix(1760000000, 0)
	client := NewClient(Config{WebhookSecret: "whsec_test_abc"})
	payload := map[string]interface{}{
		"id":   "evt_test_1",
		"type": "checkout.session.completed",
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"object":         "checkout.session",
				"id":             "cs_test_123",
				"payment_status": "paid",
				"currency":       "usd",
				"amount_total":   1288,
				"created":        now.Unix(),
				"metadata": map[string]interface{}{
					"payment_id": "1001",
					"order_no":   "WM20260101120000123456",
				},
			},
		},
	}
	body, _ := json.Marshal(payload)
	sig := ComputeSignature("whsec_test_abc", now.Unix(), body)

	event, err := client.VerifyAndParseWebhook("t=1760000000,v1="+sig, body, now)
	if err != nil {
		t.Fatalf("verify and parse webhook failed: %v", err)
	}
	if event.EventType != "checkout.session.completed" {
		t.Fatalf("unexpected event type: %s", event.EventType)
	}
	if event.PaymentID != 1001 {
		t.Fatalf("unexpected payment id: %d", event.PaymentID)
	}
	if event.SessionID != "cs_test_123" {
		t.Fatalf("unexpected session id: %s", event.SessionID)
	}
	if event.OrderNo != "WM20260101120000123456" {
		t.Fatalf("unexpected order no: %s", event.OrderNo)
	}
	if event.Status != "success" {
		t.Fatalf("unexpected status: %s", event.Status)
	}
	if event.Amount != "12.88" {
		t.Fatalf("unexpected amount: %s", event.Amount)
	}
}

func TestVerifyAndParseWebhookInvalidSignature(t *testing.T) {
	now := time.Unix(1760000000, 0)
	client := NewClient(Config{WebhookSecret: "whsec_test_abc"})
	body := []byte(`{"id":"evt_test_1","type":"checkout.session.completed","data":{"object":{"id":"cs_test_123"}}}`)

	_, err := client.VerifyAndParseWebhook("t=1760000000,v1=invalid-signature", body, now)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected signature error, got %v", err)
	}
}

func TestVerifyAndParseWebhookOutsideTolerance(t *testing.T) {
	now := time.Unix(1760000000, 0)
	client := NewClient(Config{WebhookSecret: "whsec_test_abc"})
	body := []byte(`{"id":"evt_test_1","type":"checkout.session.completed","data":{"object":{"id":"cs_test_123"}}}`)
	old := now.Add(-10 * time.Minute).Unix()
	sig := ComputeSignature("whsec_test_abc", old, body)

	_, err := client.VerifyAndParseWebhook("t="+strconv.FormatInt(old, 10)+",v1="+sig, body, now)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected tolerance error, got %v", err)
	}
}

func TestMinorAmountConversion(t *testing.T) {
	minor, err := toMinorAmount("12.88", "USD")
	if err != nil {
		t.Fatalf("to minor amount failed: %v", err)
	}
	if minor != 1288 {
		t.Fatalf("unexpected minor amount: %d", minor)
	}
	if got := fromMinorAmount(1288, "usd"); got != "12.88" {
		t.Fatalf("unexpected amount: %s", got)
	}
	minor, err = toMinorAmount("500", "JPY")
	if err != nil {
		t.Fatalf("to minor amount failed: %v", err)
	}
	if minor != 500 {
		t.Fatalf("unexpected zero-decimal minor amount: %d", minor)
	}
	if _, err := toMinorAmount("0", "USD"); err == nil {
		t.Fatalf("expected error for zero amount")
	}
}
