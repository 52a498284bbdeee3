package repository

import (
	"errors"

	"github.com/wordmart/internal/models"

	"gorm.io/gorm"
)

// TicketRepository 工单数据访问接口
type TicketRepository interface {
	GetByID(id uint) (*models.Ticket, error)
	Create(ticket *models.Ticket) error
	Update(ticket *models.Ticket) error
	List(filter TicketListFilter) ([]models.Ticket, int64, error)
	WithTx(tx *gorm.DB) *GormTicketRepository
}

// GormTicketRepository GORM 实现
type GormTicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository 创建工单仓库
func NewTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTicketRepository) WithTx(tx *gorm.DB) *GormTicketRepository {
	if tx == nil {
		return r
	}
	return &GormTicketRepository{db: tx}
}

// GetByID 根据ID获取工单
func (r *GormTicketRepository) GetByID(id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

// Create 创建工单
func (r *GormTicketRepository) Create(ticket *models.Ticket) error {
	return r.db.Create(ticket).Error
}

// Update 更新工单
func (r *GormTicketRepository) Update(ticket *models.Ticket) error {
	return r.db.Save(ticket).Error
}

// List 获取工单列表
func (r *GormTicketRepository) List(filter TicketListFilter) ([]models.Ticket, int64, error) {
	query := r.db.Model(&models.Ticket{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var tickets []models.Ticket
	if err := query.Order("id desc").Find(&tickets).Error; err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}
