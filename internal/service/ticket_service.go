package service

import (
	"strings"
	"time"

	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"
)

// TicketService 工单业务
type TicketService struct {
	tickets repository.TicketRepository
	orders  repository.OrderRepository
}

// NewTicketService 创建工单服务
func NewTicketService(tickets repository.TicketRepository, orders repository.OrderRepository) *TicketService {
	return &TicketService{tickets: tickets, orders: orders}
}

// Create 客户创建工单，可选关联自己的订单
func (s *TicketService) Create(userID uint, subject, message string, orderID *uint) (*models.Ticket, error) {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" || message == "" {
		return nil, ErrTicketInputInvalid
	}
	if orderID != nil && *orderID > 0 {
		order, err := s.orders.GetByID(*orderID)
		if err != nil {
			return nil, err
		}
		if order == nil || order.UserID != userID {
			return nil, ErrOrderNotFound
		}
	} else {
		orderID = nil
	}

	ticket := models.Ticket{
		UserID:  userID,
		OrderID: orderID,
		Subject: subject,
		Message: message,
		Status:  constants.TicketStatusOpen,
	}
	if err := s.tickets.Create(&ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListByUser 客户查看自己的工单
func (s *TicketService) ListByUser(userID uint, page, pageSize int) ([]models.Ticket, int64, error) {
	return s.tickets.List(repository.TicketListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

// GetForUser 客户查看工单详情，只允许本人
func (s *TicketService) GetForUser(userID, ticketID uint) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil || ticket.UserID != userID {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

// List 后台工单列表
func (s *TicketService) List(filter repository.TicketListFilter) ([]models.Ticket, int64, error) {
	return s.tickets.List(filter)
}

// Get 后台工单详情
func (s *TicketService) Get(id uint) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

// Reply 管理员回复工单
func (s *TicketService) Reply(id uint, reply string) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	if ticket.Status == constants.TicketStatusClosed {
		return nil, ErrTicketClosed
	}
	now := time.Now()
	ticket.Reply = strings.TrimSpace(reply)
	ticket.RepliedAt = &now
	ticket.Status = constants.TicketStatusAnswered
	if err := s.tickets.Update(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Close 关闭工单
func (s *TicketService) Close(id uint) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	ticket.Status = constants.TicketStatusClosed
	if err := s.tickets.Update(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}
