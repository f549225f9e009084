package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/repository"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

// ScheduledContentService manages calendar entries directly, outside the
// weekly generation flow.
type ScheduledContentService interface {
	Create(ctx context.Context, userID int64, req *transfer.ScheduledContentUpsert) (*models.ScheduledContent, error)
	List(ctx context.Context, userID int64, from, to string) ([]*models.ScheduledContent, error)
	Update(ctx context.Context, userID, id int64, req *transfer.ScheduledContentUpsert) (*models.ScheduledContent, error)
	UpdateStatus(ctx context.Context, userID, id int64, status string) error
	Remove(ctx context.Context, userID, id int64) error
}

type scheduledContentService struct {
	content repository.ScheduledContentRepository
	usage   UsageService
}

func NewScheduledContentService(content repository.ScheduledContentRepository, usage UsageService) ScheduledContentService {
	return &scheduledContentService{
		content: content,
		usage:   usage,
	}
}

func validateEntry(req *transfer.ScheduledContentUpsert) error {
	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if req.Time != "" {
		if _, err := time.Parse("15:04", req.Time); err != nil {
			return fmt.Errorf("%w: time must be HH:MM", ErrValidation)
		}
	}
	if req.Status != "" && !models.ValidContentStatus(req.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}
	return nil
}

func (s *scheduledContentService) Create(ctx context.Context, userID int64, req *transfer.ScheduledContentUpsert) (*models.ScheduledContent, error) {
	if err := validateEntry(req); err != nil {
		return nil, err
	}
	if err := s.usage.CheckLimit(ctx, userID, models.MetricScheduledPosts); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ContentStatusDraft
	}

	entry := &models.ScheduledContent{
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Date:      req.Date,
		Time:      req.Time,
		Platforms: req.Platforms(),
		Status:    status,
		Tags:      req.Tags,
	}

	id, err := s.content.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	if err := s.usage.Record(ctx, userID, models.MetricScheduledPosts, 1); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *scheduledContentService) List(ctx context.Context, userID int64, from, to string) ([]*models.ScheduledContent, error) {
	if from != "" && to != "" {
		return s.content.GetByDateRange(ctx, userID, from, to)
	}
	return s.content.GetByUserID(ctx, userID)
}

func (s *scheduledContentService) Update(ctx context.Context, userID, id int64, req *transfer.ScheduledContentUpsert) (*models.ScheduledContent, error) {
	owned, err := s.content.CheckByUserID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrNotFound
	}
	if err := validateEntry(req); err != nil {
		return nil, err
	}

	entry := &models.ScheduledContent{
		ID:        id,
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Date:      req.Date,
		Time:      req.Time,
		Platforms: req.Platforms(),
		Status:    req.Status,
		Tags:      req.Tags,
	}
	if entry.Status == "" {
		entry.Status = models.ContentStatusDraft
	}
	if err := s.content.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *scheduledContentService) UpdateStatus(ctx context.Context, userID, id int64, status string) error {
	if !models.ValidContentStatus(status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	owned, err := s.content.CheckByUserID(ctx, id, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}
	return s.content.UpdateStatus(ctx, status, id)
}

func (s *scheduledContentService) Remove(ctx context.Context, userID, id int64) error {
	owned, err := s.content.CheckByUserID(ctx, id, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}
	return s.content.Remove(ctx, id)
}
