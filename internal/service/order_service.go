package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/wordmart/internal/config"
	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/logger"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/queue"
	"github.com/wordmart/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单业务
type OrderService struct {
	db       *gorm.DB
	cfg      *config.Config
	orders   repository.OrderRepository
	carts    repository.CartRepository
	cartSvc  *CartService
	coupons  *CouponService
	queueClt *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(db *gorm.DB, cfg *config.Config, orders repository.OrderRepository, carts repository.CartRepository, cartSvc *CartService, coupons *CouponService, queueClt *queue.Client) *OrderService {
	return &OrderService{
		db:       db,
		cfg:      cfg,
		orders:   orders,
		carts:    carts,
		cartSvc:  cartSvc,
		coupons:  coupons,
		queueClt: queueClt,
	}
}

// Checkout 从购物车结算下单。
// 快照组装、优惠提交与订单落库在同一事务内完成，任一限额冲突整体回滚。
func (s *OrderService) Checkout(userID uint, couponCode string) (*models.Order, error) {
	snapshot, err := s.cartSvc.Snapshot(userID)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Lines) == 0 {
		return nil, ErrCartEmpty
	}

	currency := strings.ToUpper(strings.TrimSpace(s.cfg.Order.Currency))
	if currency == "" {
		currency = "USD"
	}

	var order *models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		result, coupon, err := s.coupons.ApplyCouponInTx(tx, couponCode, snapshot, userID)
		if err != nil {
			return err
		}

		created := &models.Order{
			OrderNo:        generateOrderNo(),
			UserID:         userID,
			Status:         constants.OrderStatusPendingPayment,
			Currency:       currency,
			SubtotalAmount: result.OriginalTotal,
			CouponDiscount: result.Discount,
			TotalAmount:    result.FinalTotal,
		}
		if coupon != nil {
			created.CouponID = &coupon.ID
			created.CouponCode = coupon.Code
		}
		if result.AppliedToProductID != nil {
			created.DiscountProductID = result.AppliedToProductID
		}
		for _, line := range snapshot.Lines {
			created.Items = append(created.Items, models.OrderItem{
				ProductID:  line.ProductID,
				Title:      line.Title,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.TotalPrice,
				WordCount:  line.WordCount,
			})
		}
		if err := s.orders.WithTx(tx).Create(created); err != nil {
			return err
		}
		if err := s.carts.WithTx(tx).Clear(userID); err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	expireMinutes := s.cfg.Order.PaymentExpireMinutes
	if expireMinutes <= 0 {
		expireMinutes = 30
	}
	if err := s.queueClt.EnqueueOrderTimeoutCancel(
		queue.OrderTimeoutCancelPayload{OrderID: order.ID},
		time.Duration(expireMinutes)*time.Minute,
	); err != nil {
		logger.Warnw("order_timeout_task_enqueue_failed", "order_id", order.ID, "error", err)
	}
	return order, nil
}

// GetForUser 用户查看自己的订单
func (s *OrderService) GetForUser(userID uint, orderID uint) (*models.Order, error) {
	order, err := s.orders.GetByIDWithItems(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orders.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

// List 后台订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orders.List(filter)
}

// Get 后台订单详情
func (s *OrderService) Get(id uint) (*models.Order, error) {
	order, err := s.orders.GetByIDWithItems(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// MarkPaid 支付成功回调：pending_payment → paid，幂等。
// 优惠使用计数不回补也不重复累计。
func (s *OrderService) MarkPaid(orderID uint) (bool, error) {
	now := time.Now()
	moved, err := s.orders.TransitionStatus(
		orderID,
		[]string{constants.OrderStatusPendingPayment},
		constants.OrderStatusPaid,
		map[string]interface{}{"paid_at": now},
	)
	if err != nil {
		return false, err
	}
	if !moved {
		return false, nil
	}
	if err := s.queueClt.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  constants.OrderStatusPaid,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "error", err)
	}
	return true, nil
}

// Complete 后台将已支付订单标记为已完成
func (s *OrderService) Complete(orderID uint) (*models.Order, error) {
	moved, err := s.orders.TransitionStatus(
		orderID,
		[]string{constants.OrderStatusPaid},
		constants.OrderStatusCompleted,
		nil,
	)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrOrderStateInvalid
	}
	if err := s.queueClt.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  constants.OrderStatusCompleted,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "error", err)
	}
	return s.Get(orderID)
}

// Cancel 取消待支付订单（用户或后台）。
// 已占用的优惠使用次数不回退。
func (s *OrderService) Cancel(orderID uint) (*models.Order, error) {
	now := time.Now()
	moved, err := s.orders.TransitionStatus(
		orderID,
		[]string{constants.OrderStatusPendingPayment},
		constants.OrderStatusCanceled,
		map[string]interface{}{"canceled_at": now},
	)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrOrderStateInvalid
	}
	return s.Get(orderID)
}

// CancelIfUnpaid 超时取消任务入口：订单仍未支付则取消，已支付则跳过。
func (s *OrderService) CancelIfUnpaid(orderID uint) error {
	now := time.Now()
	moved, err := s.orders.TransitionStatus(
		orderID,
		[]string{constants.OrderStatusPendingPayment},
		constants.OrderStatusCanceled,
		map[string]interface{}{"canceled_at": now},
	)
	if err != nil {
		return err
	}
	if moved {
		logger.Infow("order_timeout_canceled", "order_id", orderID)
	}
	return nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("WM%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
