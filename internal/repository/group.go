package repository

import (
	"context"
	"errors"
	"time"

	"nexum/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines persistence operations for groups, memberships,
// group messages, and system-group markers.
type GroupRepository interface {
	CreateWithMembers(ctx context.Context, group *models.Group, memberIDs []string) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	SoftDelete(ctx context.Context, id uint) error
	GetMembership(ctx context.Context, groupID uint, userID string) (*models.GroupMember, error)
	ListActiveMembershipsForUser(ctx context.Context, userID string) ([]models.GroupMember, error)
	ListActiveMembers(ctx context.Context, groupID uint) ([]models.GroupMember, error)
	CountActiveMembers(ctx context.Context, groupID uint) (int64, error)
	AddMember(ctx context.Context, member *models.GroupMember) error
	SetMembershipActive(ctx context.Context, membershipID uint, active bool) error
	CreateMessage(ctx context.Context, message *models.GroupMessage) error
	ListMessages(ctx context.Context, groupID uint) ([]models.GroupMessage, error)
	LatestMessage(ctx context.Context, groupID uint) (*models.GroupMessage, error)
	CountMessagesFromOthersAfter(ctx context.Context, groupID uint, userID string, afterMs int64) (int64, error)
	GetMessage(ctx context.Context, id uint) (*models.GroupMessage, error)
	SoftDeleteMessage(ctx context.Context, id uint) error
	GetActiveSystemGroup(ctx context.Context, groupType models.SystemGroupType) (*models.SystemGroup, error)
	CreateSystemGroup(ctx context.Context, record *models.SystemGroup) error
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository returns a new GroupRepository implementation.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// CreateWithMembers creates the group, the creator's admin membership, and one
// member row per requested member (creator duplicates skipped) in a single
// transaction.
func (r *groupRepository) CreateWithMembers(ctx context.Context, group *models.Group, memberIDs []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}

		creator := models.GroupMember{
			GroupID:  group.ID,
			UserID:   group.CreatedByID,
			Role:     models.GroupRoleAdmin,
			IsActive: true,
		}
		if err := tx.Create(&creator).Error; err != nil {
			return err
		}

		seen := map[string]bool{group.CreatedByID: true}
		for _, memberID := range memberIDs {
			if seen[memberID] {
				continue
			}
			seen[memberID] = true
			member := models.GroupMember{
				GroupID:  group.ID,
				UserID:   memberID,
				Role:     models.GroupRoleMember,
				IsActive: true,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &group, nil
}

func (r *groupRepository) SoftDelete(ctx context.Context, id uint) error {
	now := time.Now().UnixMilli()
	if err := r.db.WithContext(ctx).Model(&models.Group{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": now}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetMembership(ctx context.Context, groupID uint, userID string) (*models.GroupMember, error) {
	var member models.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &member, nil
}

func (r *groupRepository) ListActiveMembershipsForUser(ctx context.Context, userID string) ([]models.GroupMember, error) {
	var members []models.GroupMember
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&members).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return members, nil
}

func (r *groupRepository) ListActiveMembers(ctx context.Context, groupID uint) ([]models.GroupMember, error) {
	var members []models.GroupMember
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND is_active = ?", groupID, true).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return members, nil
}

func (r *groupRepository) CountActiveMembers(ctx context.Context, groupID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.GroupMember{}).
		Where("group_id = ? AND is_active = ?", groupID, true).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *groupRepository) AddMember(ctx context.Context, member *models.GroupMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("Already a member of this group")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// SetMembershipActive flips the active flag; reactivation refreshes joined_at
// so the join-time based group unread count restarts from the re-add.
func (r *groupRepository) SetMembershipActive(ctx context.Context, membershipID uint, active bool) error {
	updates := map[string]interface{}{"is_active": active}
	if active {
		updates["joined_at"] = time.Now().UnixMilli()
	}
	if err := r.db.WithContext(ctx).Model(&models.GroupMember{}).
		Where("id = ?", membershipID).
		Updates(updates).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) CreateMessage(ctx context.Context, message *models.GroupMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) ListMessages(ctx context.Context, groupID uint) ([]models.GroupMessage, error) {
	var messages []models.GroupMessage
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND is_deleted = ?", groupID, false).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *groupRepository) LatestMessage(ctx context.Context, groupID uint) (*models.GroupMessage, error) {
	var message models.GroupMessage
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND is_deleted = ?", groupID, false).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *groupRepository) CountMessagesFromOthersAfter(ctx context.Context, groupID uint, userID string, afterMs int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.GroupMessage{}).
		Where("group_id = ? AND is_deleted = ? AND sender_id <> ? AND created_at > ?", groupID, false, userID, afterMs).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *groupRepository) GetMessage(ctx context.Context, id uint) (*models.GroupMessage, error) {
	var message models.GroupMessage
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *groupRepository) SoftDeleteMessage(ctx context.Context, id uint) error {
	now := time.Now().UnixMilli()
	if err := r.db.WithContext(ctx).Model(&models.GroupMessage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": now}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetActiveSystemGroup(ctx context.Context, groupType models.SystemGroupType) (*models.SystemGroup, error) {
	var record models.SystemGroup
	err := r.db.WithContext(ctx).
		Where("type = ? AND is_active = ?", groupType, true).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &record, nil
}

func (r *groupRepository) CreateSystemGroup(ctx context.Context, record *models.SystemGroup) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
