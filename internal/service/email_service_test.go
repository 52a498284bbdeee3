package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/wordmart/internal/config"
	"github.com/wordmart/internal/models"
)

func TestSendOrderStatusEmailDisabled(t *testing.T) {
	svc := NewEmailService(config.EmailConfig{})
	err := svc.SendOrderStatusEmail("user@example.com", OrderStatusEmailInput{
		OrderNo: "WM1", Status: "paid", Amount: models.NewMoneyFromFloat(90), Currency: "USD",
	}, "en-US")
	if !errors.Is(err, ErrEmailDisabled) {
		t.Fatalf("want ErrEmailDisabled, got %v", err)
	}
}

func TestSendOrderStatusEmailNotConfigured(t *testing.T) {
	svc := NewEmailService(config.EmailConfig{Enabled: true})
	err := svc.SendOrderStatusEmail("user@example.com", OrderStatusEmailInput{OrderNo: "WM1", Status: "paid"}, "en-US")
	if !errors.Is(err, ErrEmailNotConfigured) {
		t.Fatalf("want ErrEmailNotConfigured, got %v", err)
	}
}

func TestBuildEmailMessageHeaders(t *testing.T) {
	msg := buildEmailMessage(
		buildFromAddress("noreply@wordmart.local", "WordMart"),
		"user@example.com",
		"Order update: Paid",
		"Order WM1 is now Paid.",
	)
	for _, want := range []string{
		"From: ",
		"To: user@example.com",
		"Subject: ",
		"Content-Type: text/plain; charset=UTF-8",
		"Order WM1 is now Paid.",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}
