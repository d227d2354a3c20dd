package repository

import (
	"context"
	"errors"

	"nexum/internal/models"

	"gorm.io/gorm"
)

// RoleRepository defines persistence operations for role assignments.
type RoleRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserRole, error)
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository returns a new RoleRepository implementation.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) GetByUserID(ctx context.Context, userID string) (*models.UserRole, error) {
	var role models.UserRole
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &role, nil
}
