package public

import (
	"errors"
	"io"
	"net/http"

	handlershared "github.com/wordmart/internal/http/handlers/shared"
	"github.com/wordmart/internal/http/response"
	"github.com/wordmart/internal/service"

	"github.com/gin-gonic/gin"
)

const stripeSignatureHeader = "Stripe-Signature"

// maxWebhookBodyBytes 回调请求体大小上限
const maxWebhookBodyBytes = 1 << 20

// CreatePayment 为待支付订单创建支付会话
func (h *Handler) CreatePayment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	result, err := h.PaymentService.CreatePayment(c.Request.Context(), userID, orderID)
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "error.payment_gateway_failed")
		return
	}
	response.Success(c, result)
}

// GetPayment 查询订单的最新支付记录
func (h *Handler) GetPayment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	payment, err := h.PaymentService.GetForOrder(userID, orderID)
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, payment)
}

// StripeWebhook 接收 Stripe 回调。
// 验签失败返回 400，处理失败返回 500 让网关重试，其余一律返回 200。
func (h *Handler) StripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		c.String(http.StatusBadRequest, "read body failed")
		return
	}
	signature := c.GetHeader(stripeSignatureHeader)
	if err := h.PaymentService.HandleWebhook(signature, body); err != nil {
		if errors.Is(err, service.ErrWebhookSignature) {
			c.String(http.StatusBadRequest, "signature verification failed")
			return
		}
		handlershared.RequestLog(c).Errorw("payment_webhook_failed", "error", err)
		c.String(http.StatusInternalServerError, "webhook processing failed")
		return
	}
	c.String(http.StatusOK, "ok")
}
