package models

import (
	"time"

	"gorm.io/gorm"
)

// Post 内容表，覆盖博客、案例与服务介绍三类
type Post struct {
	ID          uint           `gorm:"primarykey" json:"id"`                          // 主键
	Type        string         `gorm:"not null;index" json:"type"`                    // 内容类型 blog/case_study/service
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`              // 路径标识
	Title       string         `gorm:"not null" json:"title"`                         // 标题
	Summary     string         `gorm:"type:text" json:"summary"`                      // 摘要
	Body        string         `gorm:"type:text" json:"body"`                         // 正文
	CoverImage  string         `gorm:"default:''" json:"cover_image"`                 // 封面图
	IsPublished bool           `gorm:"default:false;index" json:"is_published"`       // 是否发布
	PublishedAt *time.Time     `json:"published_at"`                                  // 发布时间
	SortOrder   int            `gorm:"default:0" json:"sort_order"`                   // 排序
	CreatedAt   time.Time      `json:"created_at"`                                    // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                    // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
