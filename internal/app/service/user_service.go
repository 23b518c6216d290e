package service

import (
	"context"
	"errors"
	"fmt"

	"blog_nest/internal/common"
	"blog_nest/internal/domain/model"
	"blog_nest/internal/domain/repository"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		return nil, common.NotFound("No users found")
	}
	return users, nil
}

// ToggleActive flips the active flag and returns the username for the
// confirmation message.
func (s *UserService) ToggleActive(ctx context.Context, id string) (string, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.NotFound("User not found")
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.users.UpdateActive(ctx, id, !user.Active); err != nil {
		return "", fmt.Errorf("failed to update user: %w", err)
	}
	return user.Username, nil
}

// SetRoles replaces the role set. The set must be non-empty and drawn from
// the known tags.
func (s *UserService) SetRoles(ctx context.Context, id string, roles []string) (string, error) {
	if len(roles) == 0 {
		return "", common.BadRequest("Add roles! User, Admin or both")
	}
	for _, role := range roles {
		if !model.ValidRole(role) {
			return "", common.BadRequest("Add roles! User, Admin or both")
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.NotFound("User not found")
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.users.UpdateRoles(ctx, id, roles); err != nil {
		return "", fmt.Errorf("failed to update user: %w", err)
	}
	return user.Username, nil
}
