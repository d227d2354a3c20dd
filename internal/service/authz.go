package service

import (
	"context"

	"nexum/internal/models"
	"nexum/internal/repository"
)

// RoleService resolves moderation roles. Users without an explicit
// grant fall back to the regular user role.
type RoleService struct {
	roleRepo repository.RoleRepository
}

func NewRoleService(roleRepo repository.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

func (s *RoleService) ResolveRole(ctx context.Context, userID string) (models.Role, error) {
	row, err := s.roleRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.RoleUser, err
	}
	if row == nil {
		return models.RoleUser, nil
	}
	return row.Role, nil
}

func (s *RoleService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	role, err := s.ResolveRole(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == models.RoleAdmin, nil
}

// IsModerator reports whether the user holds moderator privileges.
// Admins are moderators too.
func (s *RoleService) IsModerator(ctx context.Context, userID string) (bool, error) {
	role, err := s.ResolveRole(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == models.RoleAdmin || role == models.RoleModerator, nil
}
