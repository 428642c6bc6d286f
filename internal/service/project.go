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

type ProjectService struct {
	projects store.ProjectStore
	users    store.UserStore
	tx       store.TxRunner
	logger   *zap.Logger
}

func NewProjectService(projects store.ProjectStore, users store.UserStore, tx store.TxRunner, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projects: projects,
		users:    users,
		tx:       tx,
		logger:   logger,
	}
}

// Create persists a project and links the owning user as its first member.
// Both writes run in one transaction, so a failed link never leaves an
// orphaned project behind.
func (s *ProjectService) Create(ctx context.Context, name, description string, ownerID int) (*model.Project, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("user", ownerID)
		}
		return nil, err
	}

	p := &model.Project{
		Name:        name,
		Description: description,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.projects.Insert(ctx, p); err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		if err := s.users.AddProjectMember(ctx, ownerID, p.ID); err != nil {
			return fmt.Errorf("link owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project created",
		zap.Int("project_id", p.ID),
		zap.Int("owner_id", ownerID),
	)
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id int) (*model.Project, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("project", id)
		}
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id int, patch model.ProjectPatch) (*model.Project, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	p, err := s.projects.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project updated", zap.Int("project_id", id))
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("project", id)
		}
		return err
	}
	s.logger.Info("Project deleted", zap.Int("project_id", id))
	return nil
}

// ForUser returns every project the user is a member of.
func (s *ProjectService) ForUser(ctx context.Context, userID int) ([]model.Project, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("user", userID)
		}
		return nil, err
	}
	return s.projects.ListByMember(ctx, userID)
}
