package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/wordmart/internal/http/handlers/shared"
	"github.com/wordmart/internal/http/response"
	"github.com/wordmart/internal/repository"
	"github.com/wordmart/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders 订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uint(userID),
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Get(orderID)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, order)
}

// MarkOrderPaid 人工标记订单已支付，用于线下收款等场景
func (h *Handler) MarkOrderPaid(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	moved, err := h.OrderService.MarkPaid(orderID)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	if !moved {
		respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		return
	}
	requestLog(c).Infow("order_marked_paid_manually", "order_id", orderID)
	order, err := h.OrderService.Get(orderID)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, order)
}

// CompleteOrder 将已支付订单标记为已完成
func (h *Handler) CompleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Complete(orderID)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消待支付订单
func (h *Handler) CancelOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Cancel(orderID)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, order)
}

func respondOrderAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "error.order_not_found", nil)
	case errors.Is(err, service.ErrOrderStateInvalid):
		respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
