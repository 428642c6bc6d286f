// Package service implements the domain operations over users, projects,
// tasks and tags. Services are wired with store interfaces and return
// apperr error kinds; they know nothing about HTTP.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"projecthub/internal/apperr"
	"projecthub/internal/auth"
	"projecthub/internal/model"
	"projecthub/internal/store"
)

type UserService struct {
	users  store.UserStore
	hasher *auth.Hasher
	logger *zap.Logger
}

func NewUserService(users store.UserStore, hasher *auth.Hasher, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// Create hashes the password and persists a new user. A duplicate email
// comes back as a ConflictError.
func (s *UserService) Create(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Insert(ctx, u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apperr.Conflict("user", "email", email)
		}
		return nil, err
	}

	s.logger.Info("User created", zap.Int("user_id", u.ID), zap.String("email", email))
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("user", id)
		}
		return nil, err
	}
	return u, nil
}

// Update applies a partial update. An all-empty patch is a no-op that
// returns the current state; rejecting empty payloads is the boundary's
// job. A present password is re-hashed before it reaches the store.
func (s *UserService) Update(ctx context.Context, id int, patch model.UserPatch) (*model.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.Password = &hash
	}

	u, err := s.users.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrConflict) && patch.Email != nil {
			return nil, apperr.Conflict("user", "email", *patch.Email)
		}
		return nil, err
	}

	s.logger.Info("User updated", zap.Int("user_id", id))
	return u, nil
}

// Authenticate looks the user up by email and verifies the password.
// Unknown email and wrong password both return (nil, nil): the two
// failures must not be distinguishable by the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, nil
	}
	return u, nil
}

// LinkProject adds the user to the project's membership. Linking an
// existing member is a no-op returning the current user state.
func (s *UserService) LinkProject(ctx context.Context, userID, projectID int) (*model.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	member, err := s.users.IsProjectMember(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if member {
		return u, nil
	}

	if err := s.users.AddProjectMember(ctx, userID, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("project", projectID)
		}
		if errors.Is(err, store.ErrConflict) {
			// Lost a race against an identical link; final state matches.
			return u, nil
		}
		return nil, err
	}

	s.logger.Info("User linked to project",
		zap.Int("user_id", userID),
		zap.Int("project_id", projectID),
	)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("user", id)
		}
		return err
	}
	s.logger.Info("User deleted", zap.Int("user_id", id))
	return nil
}
