package service

import (
	"context"
	"testing"

	"nexum/internal/models"
)

func TestRoleServiceDefaultsToUser(t *testing.T) {
	repo := &roleRepoStub{
		getByUserIDFn: func(context.Context, string) (*models.UserRole, error) { return nil, nil },
	}

	svc := NewRoleService(repo)
	role, err := svc.ResolveRole(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != models.RoleUser {
		t.Fatalf("expected user role, got %q", role)
	}
}

func TestRoleServiceAdminCountsAsModerator(t *testing.T) {
	repo := &roleRepoStub{
		getByUserIDFn: func(context.Context, string) (*models.UserRole, error) {
			return &models.UserRole{UserID: "u1", Role: models.RoleAdmin}, nil
		},
	}

	svc := NewRoleService(repo)
	isMod, err := svc.IsModerator(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isMod {
		t.Fatal("expected admin to pass moderator check")
	}

	isAdmin, err := svc.IsAdmin(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isAdmin {
		t.Fatal("expected admin check to pass")
	}
}

func TestRoleServiceModeratorIsNotAdmin(t *testing.T) {
	repo := &roleRepoStub{
		getByUserIDFn: func(context.Context, string) (*models.UserRole, error) {
			return &models.UserRole{UserID: "u1", Role: models.RoleModerator}, nil
		},
	}

	svc := NewRoleService(repo)
	isAdmin, err := svc.IsAdmin(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if isAdmin {
		t.Fatal("expected moderator to fail admin check")
	}
}
