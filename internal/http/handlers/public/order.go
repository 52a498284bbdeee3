package public

import (
	"strconv"

	handlershared "github.com/wordmart/internal/http/handlers/shared"
	"github.com/wordmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算请求，优惠码可选
type CheckoutRequest struct {
	CouponCode string `json:"coupon_code"`
}

// Checkout 购物车结算下单
func (h *Handler) Checkout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.Checkout(userID, req.CouponCode)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

// GetOrders 用户订单列表
func (h *Handler) GetOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	orders, total, err := h.OrderService.ListByUser(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetForUser(userID, orderID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

// CancelOrder 用户取消自己的待支付订单
func (h *Handler) CancelOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	if _, err := h.OrderService.GetForUser(userID, orderID); err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	order, err := h.OrderService.Cancel(orderID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(id), true
}
