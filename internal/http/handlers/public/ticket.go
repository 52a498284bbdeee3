package public

import (
	"strconv"

	handlershared "github.com/wordmart/internal/http/handlers/shared"
	"github.com/wordmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// TicketCreateRequest 创建工单请求，可关联自己的订单
type TicketCreateRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
	OrderID *uint  `json:"order_id"`
}

// CreateTicket 用户提交工单
func (h *Handler) CreateTicket(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req TicketCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	ticket, err := h.TicketService.Create(userID, req.Subject, req.Message, req.OrderID)
	if err != nil {
		respondWithMappedError(c, err, ticketErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, ticket)
}

// GetTickets 用户工单列表
func (h *Handler) GetTickets(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	tickets, total, err := h.TicketService.ListByUser(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, tickets, response.NewPagination(page, pageSize, total))
}

// GetTicket 用户工单详情
func (h *Handler) GetTicket(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ticketID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	ticket, svcErr := h.TicketService.GetForUser(userID, uint(ticketID))
	if svcErr != nil {
		respondWithMappedError(c, svcErr, ticketErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, ticket)
}
