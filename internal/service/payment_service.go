package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wordmart/internal/config"
	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/logger"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/payment/stripe"
	"github.com/wordmart/internal/repository"

	"go.uber.org/zap"
)

// PaymentService 支付业务
type PaymentService struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
	orderSvc *OrderService
	client   *stripe.Client
}

// NewPaymentService 创建支付服务
func NewPaymentService(cfg *config.Config, payments repository.PaymentRepository, orders repository.OrderRepository, orderSvc *OrderService) *PaymentService {
	client := stripe.NewClient(stripe.Config{
		SecretKey:     cfg.Payment.Stripe.SecretKey,
		WebhookSecret: cfg.Payment.Stripe.WebhookSecret,
		SuccessURL:    cfg.Payment.Stripe.SuccessURL,
		CancelURL:     cfg.Payment.Stripe.CancelURL,
		APIBaseURL:    cfg.Payment.Stripe.APIBaseURL,
	})
	return &PaymentService{
		payments: payments,
		orders:   orders,
		orderSvc: orderSvc,
		client:   client,
	}
}

// CreatePaymentResult 创建支付返回
type CreatePaymentResult struct {
	Payment *models.Payment
	PayURL  string
}

// CreatePayment 为用户的待支付订单创建 Stripe Checkout Session
func (s *PaymentService) CreatePayment(ctx context.Context, userID uint, orderID uint) (*CreatePaymentResult, error) {
	if !s.client.Configured() {
		return nil, ErrPaymentNotConfigured
	}
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPendingPayment {
		return nil, ErrOrderStateInvalid
	}

	// 已有未完成会话则直接复用，避免为同一订单重复创建
	latest, err := s.payments.GetLatestByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.Status == constants.PaymentStatusInitiated && latest.PayURL != "" {
		return &CreatePaymentResult{Payment: latest, PayURL: latest.PayURL}, nil
	}

	session, err := s.client.CreateCheckoutSession(ctx, stripe.CreateSessionInput{
		OrderNo:     order.OrderNo,
		PaymentID:   order.ID,
		Amount:      order.TotalAmount.String(),
		Currency:    order.Currency,
		Description: fmt.Sprintf("Order %s", order.OrderNo),
	})
	if err != nil {
		logger.Errorw("payment_session_create_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil, err
	}

	payment := &models.Payment{
		OrderID:   order.ID,
		Provider:  constants.PaymentProviderStripe,
		SessionID: session.SessionID,
		Status:    constants.PaymentStatusInitiated,
		Amount:    order.TotalAmount,
		Currency:  order.Currency,
		PayURL:    session.PayURL,
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, err
	}
	logger.Infow("payment_session_created",
		"order_id", order.ID,
		"payment_id", payment.ID,
		"session_id", session.SessionID,
	)
	return &CreatePaymentResult{Payment: payment, PayURL: session.PayURL}, nil
}

// GetForOrder 查询用户订单最近一笔支付单
func (s *PaymentService) GetForOrder(userID uint, orderID uint) (*models.Payment, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	payment, err := s.payments.GetLatestByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// HandleWebhook 校验并处理 Stripe webhook。
// 签名失败返回 ErrWebhookSignature；未知会话与重复通知均幂等吞掉。
func (s *PaymentService) HandleWebhook(signatureHeader string, body []byte) error {
	if !s.client.Configured() {
		return ErrPaymentNotConfigured
	}
	event, err := s.client.VerifyAndParseWebhook(signatureHeader, body, time.Now())
	if err != nil {
		logger.Warnw("payment_webhook_rejected",
			"body_size", len(body),
			"error", err,
		)
		return ErrWebhookSignature
	}
	log := logger.SW(
		"event_id", event.EventID,
		"event_type", event.EventType,
		"session_id", event.SessionID,
	)

	if event.SessionID == "" || !strings.HasPrefix(event.SessionID, "cs_") {
		log.Infow("payment_webhook_ignored_object")
		return nil
	}
	payment, err := s.payments.GetBySessionID(event.SessionID)
	if err != nil {
		log.Errorw("payment_webhook_lookup_failed", "error", err)
		return err
	}
	if payment == nil {
		log.Infow("payment_webhook_unknown_session")
		return nil
	}

	switch event.Status {
	case constants.PaymentStatusSuccess:
		return s.applySuccess(payment, event, log)
	case constants.PaymentStatusExpired, constants.PaymentStatusFailed:
		if payment.Status == constants.PaymentStatusSuccess {
			log.Infow("payment_webhook_stale_failure", "payment_id", payment.ID)
			return nil
		}
		payment.Status = event.Status
		if err := s.payments.Update(payment); err != nil {
			return err
		}
		log.Infow("payment_marked_failed", "payment_id", payment.ID, "status", event.Status)
		return nil
	default:
		log.Infow("payment_webhook_status_ignored", "status", event.Status)
		return nil
	}
}

func (s *PaymentService) applySuccess(payment *models.Payment, event *stripe.WebhookEvent, log *zap.SugaredLogger) error {
	if payment.Status != constants.PaymentStatusSuccess {
		now := time.Now()
		if event.OccurredAt != nil {
			now = *event.OccurredAt
		}
		payment.Status = constants.PaymentStatusSuccess
		payment.SucceededAt = &now
		if err := s.payments.Update(payment); err != nil {
			log.Errorw("payment_update_failed", "payment_id", payment.ID, "error", err)
			return err
		}
	}

	moved, err := s.orderSvc.MarkPaid(payment.OrderID)
	if err != nil {
		log.Errorw("payment_order_mark_paid_failed",
			"payment_id", payment.ID,
			"order_id", payment.OrderID,
			"error", err,
		)
		return err
	}
	log.Infow("payment_succeeded",
		"payment_id", payment.ID,
		"order_id", payment.OrderID,
		"order_transitioned", moved,
	)
	return nil
}
