package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"projecthub/internal/apperr"
	"projecthub/internal/model"
	"projecthub/internal/store"
)

type TagService struct {
	tags   store.TagStore
	logger *zap.Logger
}

func NewTagService(tags store.TagStore, logger *zap.Logger) *TagService {
	return &TagService{tags: tags, logger: logger}
}

// Get returns the first tag matching the filter.
func (s *TagService) Get(ctx context.Context, filter store.TagFilter) (*model.Tag, error) {
	t, err := s.tags.FindFirst(ctx, filter)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			id := 0
			if filter.ID != nil {
				id = *filter.ID
			}
			return nil, apperr.NotFound("tag", id)
		}
		return nil, err
	}
	return t, nil
}

func (s *TagService) List(ctx context.Context, filter store.TagFilter, page store.Pagination) ([]model.Tag, error) {
	return s.tags.List(ctx, filter, page)
}

// Create attaches a new tag to an existing task. A tag never exists
// without an owning task, so a missing task is a NotFoundError.
func (s *TagService) Create(ctx context.Context, title string, taskID int) (*model.Tag, error) {
	t := &model.Tag{TaskID: taskID, Title: title}
	if err := s.tags.Insert(ctx, t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("task", taskID)
		}
		return nil, err
	}
	s.logger.Info("Tag created", zap.Int("tag_id", t.ID), zap.Int("task_id", taskID))
	return t, nil
}

func (s *TagService) Update(ctx context.Context, id int, patch model.TagPatch) (*model.Tag, error) {
	t, err := s.tags.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("tag", id)
		}
		return nil, err
	}
	return t, nil
}

// Delete removes the tag and returns the removed row.
func (s *TagService) Delete(ctx context.Context, id int) (*model.Tag, error) {
	t, err := s.tags.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("tag", id)
		}
		return nil, err
	}
	s.logger.Info("Tag deleted", zap.Int("tag_id", id))
	return t, nil
}
