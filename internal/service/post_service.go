package service

import (
	"strings"
	"time"

	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"
)

// PostInput 内容入参
type PostInput struct {
	Type        string `json:"type" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Summary     string `json:"summary"`
	Body        string `json:"body"`
	CoverImage  string `json:"cover_image"`
	IsPublished *bool  `json:"is_published"`
	SortOrder   int    `json:"sort_order"`
}

// PostService 内容业务
type PostService struct {
	posts repository.PostRepository
}

// NewPostService 创建内容服务
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

func isPostTypeValid(postType string) bool {
	switch postType {
	case constants.PostTypeBlog, constants.PostTypeCaseStudy, constants.PostTypeService:
		return true
	}
	return false
}

// ListPublished 公开内容列表
func (s *PostService) ListPublished(postType string, page, pageSize int) ([]models.Post, int64, error) {
	return s.posts.List(repository.PostListFilter{
		Page:          page,
		PageSize:      pageSize,
		Type:          postType,
		OnlyPublished: true,
		OrderBy:       "published_at desc, id desc",
	})
}

// GetPublishedBySlug 公开内容详情
func (s *PostService) GetPublishedBySlug(slug string) (*models.Post, error) {
	post, err := s.posts.GetBySlug(normalizeSlug(slug))
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublished {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// List 后台内容列表
func (s *PostService) List(filter repository.PostListFilter) ([]models.Post, int64, error) {
	return s.posts.List(filter)
}

// Get 后台内容详情
func (s *PostService) Get(id uint) (*models.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Create 创建内容
func (s *PostService) Create(input PostInput) (*models.Post, error) {
	if !isPostTypeValid(input.Type) {
		return nil, ErrPostTypeInvalid
	}
	slug := normalizeSlug(input.Slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	existing, err := s.posts.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	post := models.Post{
		Type:       input.Type,
		Slug:       slug,
		Title:      strings.TrimSpace(input.Title),
		Summary:    input.Summary,
		Body:       input.Body,
		CoverImage: input.CoverImage,
		SortOrder:  input.SortOrder,
	}
	if input.IsPublished != nil && *input.IsPublished {
		now := time.Now()
		post.IsPublished = true
		post.PublishedAt = &now
	}
	if err := s.posts.Create(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update 更新内容，首次发布时记录发布时间
func (s *PostService) Update(id uint, input PostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if input.Type != "" {
		if !isPostTypeValid(input.Type) {
			return nil, ErrPostTypeInvalid
		}
		post.Type = input.Type
	}
	slug := normalizeSlug(input.Slug)
	if slug != "" && slug != post.Slug {
		existing, err := s.posts.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != post.ID {
			return nil, ErrSlugTaken
		}
		post.Slug = slug
	}
	post.Title = strings.TrimSpace(input.Title)
	post.Summary = input.Summary
	post.Body = input.Body
	post.CoverImage = input.CoverImage
	post.SortOrder = input.SortOrder
	if input.IsPublished != nil {
		if *input.IsPublished && !post.IsPublished {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.IsPublished = *input.IsPublished
	}
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 删除内容
func (s *PostService) Delete(id uint) error {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.posts.Delete(id)
}
