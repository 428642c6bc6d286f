package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"projecthub/internal/apperr"
	"projecthub/internal/model"
	"projecthub/internal/store"
)

type TaskService struct {
	tasks    store.TaskStore
	tags     store.TagStore
	projects store.ProjectStore
	tx       store.TxRunner
	logger   *zap.Logger
}

func NewTaskService(tasks store.TaskStore, tags store.TagStore, projects store.ProjectStore, tx store.TxRunner, logger *zap.Logger) *TaskService {
	return &TaskService{
		tasks:    tasks,
		tags:     tags,
		projects: projects,
		tx:       tx,
		logger:   logger,
	}
}

// Create persists a task and one tag per title as a single transaction.
// A task cannot be created without at least one tag.
func (s *TaskService) Create(ctx context.Context, title, description string, status model.Status, projectID int, tagTitles []string) (*model.Task, []model.Tag, error) {
	if len(tagTitles) == 0 {
		return nil, nil, apperr.Validation("task", "tags", "at least one tag is required")
	}
	if !status.Valid() {
		return nil, nil, apperr.Validation("task", "status", fmt.Sprintf("unknown status %q", status))
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperr.NotFound("project", projectID)
		}
		return nil, nil, err
	}

	t := &model.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      status,
	}
	created := []model.Tag{}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tasks.Insert(ctx, t); err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		for _, tagTitle := range tagTitles {
			tg := model.Tag{TaskID: t.ID, Title: tagTitle}
			if err := s.tags.Insert(ctx, &tg); err != nil {
				return fmt.Errorf("create tag %q: %w", tagTitle, err)
			}
			created = append(created, tg)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Task created",
		zap.Int("task_id", t.ID),
		zap.Int("project_id", projectID),
		zap.Int("tag_count", len(created)),
	)
	t.Tags = created
	return t, created, nil
}

func (s *TaskService) Get(ctx context.Context, id int) (*model.Task, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("task", id)
		}
		return nil, err
	}
	return t, nil
}

// Update applies the scalar patch first, then creates one tag per entry of
// addTags (duplicate titles are allowed) and removes tags matching each
// entry of removeTags by title. Everything runs in one transaction. An
// update with nothing to change is rejected.
func (s *TaskService) Update(ctx context.Context, id int, patch model.TaskPatch, addTags, removeTags []string) (*model.Task, error) {
	if patch.Empty() && len(addTags) == 0 && len(removeTags) == 0 {
		return nil, apperr.Validation("task", "update", "no fields to update")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperr.Validation("task", "status", fmt.Sprintf("unknown status %q", *patch.Status))
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	var updated *model.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := s.tasks.Update(ctx, id, patch)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}

		for _, title := range addTags {
			tg := model.Tag{TaskID: id, Title: title}
			if err := s.tags.Insert(ctx, &tg); err != nil {
				return fmt.Errorf("add tag %q: %w", title, err)
			}
		}
		for _, title := range removeTags {
			if _, err := s.tags.DeleteByTaskAndTitle(ctx, id, title); err != nil {
				return fmt.Errorf("remove tag %q: %w", title, err)
			}
		}

		tags, err := s.tags.ListByTask(ctx, id)
		if err != nil {
			return fmt.Errorf("load tags: %w", err)
		}
		t.Tags = tags
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Task updated",
		zap.Int("task_id", id),
		zap.Int("tags_added", len(addTags)),
		zap.Int("tags_removed", len(removeTags)),
	)
	return updated, nil
}

// ForProject returns the project's tasks with their tag sets embedded.
func (s *TaskService) ForProject(ctx context.Context, projectID int) ([]model.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *TaskService) Delete(ctx context.Context, id int) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("task", id)
		}
		return err
	}
	s.logger.Info("Task deleted", zap.Int("task_id", id))
	return nil
}
