package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/repository"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

// ContentService manages the content library: reusable post material grouped
// by category, plus user-defined categories beyond the built-in set.
type ContentService interface {
	CreatePost(ctx context.Context, userID int64, req *transfer.PostUpsert) (*models.Post, error)
	ListPosts(ctx context.Context, userID int64, category string) ([]*models.Post, error)
	UpdatePost(ctx context.Context, userID, id int64, req *transfer.PostUpsert) (*models.Post, error)
	SetPostUsed(ctx context.Context, userID, id int64, used bool) error
	RemovePost(ctx context.Context, userID, id int64) error
	ListCategories(ctx context.Context, userID int64) ([]*models.CustomCategory, error)
	CreateCategory(ctx context.Context, userID int64, req *transfer.CategoryUpsert) (*models.CustomCategory, error)
	RemoveCategory(ctx context.Context, userID, id int64) error
}

type contentService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
}

func NewContentService(posts repository.PostRepository, categories repository.CategoryRepository) ContentService {
	return &contentService{
		posts:      posts,
		categories: categories,
	}
}

func (s *contentService) CreatePost(ctx context.Context, userID int64, req *transfer.PostUpsert) (*models.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	category := req.Category
	if category == "" {
		category = "general"
	}

	post := &models.Post{
		UserID:   userID,
		Category: category,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Tags:     req.Tags,
		URL:      req.URL,
		Field1:   req.Field1,
		Field2:   req.Field2,
	}

	id, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = id
	return post, nil
}

func (s *contentService) ListPosts(ctx context.Context, userID int64, category string) ([]*models.Post, error) {
	if category != "" {
		return s.posts.GetByCategory(ctx, userID, category)
	}
	return s.posts.GetByUserID(ctx, userID)
}

func (s *contentService) UpdatePost(ctx context.Context, userID, id int64, req *transfer.PostUpsert) (*models.Post, error) {
	owned, err := s.posts.CheckByUserID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	post := &models.Post{
		ID:       id,
		UserID:   userID,
		Category: req.Category,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Tags:     req.Tags,
		URL:      req.URL,
		Field1:   req.Field1,
		Field2:   req.Field2,
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *contentService) SetPostUsed(ctx context.Context, userID, id int64, used bool) error {
	owned, err := s.posts.CheckByUserID(ctx, id, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}
	return s.posts.SetUsed(ctx, id, used)
}

func (s *contentService) RemovePost(ctx context.Context, userID, id int64) error {
	owned, err := s.posts.CheckByUserID(ctx, id, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}
	return s.posts.Remove(ctx, id)
}

func (s *contentService) ListCategories(ctx context.Context, userID int64) ([]*models.CustomCategory, error) {
	return s.categories.GetByUserID(ctx, userID)
}

func (s *contentService) CreateCategory(ctx context.Context, userID int64, req *transfer.CategoryUpsert) (*models.CustomCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	existing, err := s.categories.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, cat := range existing {
		if strings.EqualFold(cat.Name, name) {
			return nil, fmt.Errorf("%w: category %q already exists", ErrValidation, name)
		}
	}

	category := &models.CustomCategory{
		UserID: userID,
		Name:   name,
		Icon:   req.Icon,
	}
	id, err := s.categories.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	category.ID = id
	return category, nil
}

func (s *contentService) RemoveCategory(ctx context.Context, userID, id int64) error {
	owned, err := s.categories.CheckByUserID(ctx, id, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}
	return s.categories.Remove(ctx, id)
}
