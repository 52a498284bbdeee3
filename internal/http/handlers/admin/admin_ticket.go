package admin

import (
	"errors"
	"strings"

	handlershared "github.com/wordmart/internal/http/handlers/shared"
	"github.com/wordmart/internal/http/response"
	"github.com/wordmart/internal/repository"
	"github.com/wordmart/internal/service"

	"github.com/gin-gonic/gin"
)

// ListTickets 工单列表
func (h *Handler) ListTickets(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.TicketListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	tickets, total, err := h.TicketService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, tickets, response.NewPagination(page, pageSize, total))
}

// GetTicket 工单详情
func (h *Handler) GetTicket(c *gin.Context) {
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ticket, err := h.TicketService.Get(ticketID)
	if err != nil {
		respondTicketAdminError(c, err)
		return
	}
	response.Success(c, ticket)
}

// TicketReplyRequest 工单回复请求
type TicketReplyRequest struct {
	Reply string `json:"reply" binding:"required"`
}

// ReplyTicket 回复工单
func (h *Handler) ReplyTicket(c *gin.Context) {
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req TicketReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	ticket, err := h.TicketService.Reply(ticketID, req.Reply)
	if err != nil {
		respondTicketAdminError(c, err)
		return
	}
	response.Success(c, ticket)
}

// CloseTicket 关闭工单
func (h *Handler) CloseTicket(c *gin.Context) {
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ticket, err := h.TicketService.Close(ticketID)
	if err != nil {
		respondTicketAdminError(c, err)
		return
	}
	response.Success(c, ticket)
}

func respondTicketAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTicketNotFound):
		respondError(c, response.CodeNotFound, "error.ticket_not_found", nil)
	case errors.Is(err, service.ErrTicketInputInvalid):
		respondError(c, response.CodeBadRequest, "error.ticket_input_invalid", nil)
	case errors.Is(err, service.ErrTicketClosed):
		respondError(c, response.CodeBadRequest, "error.ticket_closed", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
