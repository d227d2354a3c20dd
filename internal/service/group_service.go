package service

import (
	"context"
	"sort"

	"nexum/internal/models"
	"nexum/internal/repository"
)

const (
	defaultGroupName        = "Nexum Chat"
	defaultGroupDescription = "Welcome to Nexum Chat! Connect with everyone in the community."
)

// GroupService handles group chats, membership lifecycle, and the
// platform-wide default group.
type GroupService struct {
	groupRepo   repository.GroupRepository
	profileRepo repository.ProfileRepository
}

type CreateGroupInput struct {
	Name        string
	Description string
	Avatar      string
	MemberIDs   []string
}

func NewGroupService(groupRepo repository.GroupRepository, profileRepo repository.ProfileRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo, profileRepo: profileRepo}
}

// CreateGroup creates a group with the caller as admin plus the listed
// members.
func (s *GroupService) CreateGroup(ctx context.Context, userID string, in CreateGroupInput) (*models.Group, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Group name is required")
	}

	group := &models.Group{
		Name:        in.Name,
		Description: in.Description,
		Avatar:      in.Avatar,
		CreatedByID: userID,
	}
	if err := s.groupRepo.CreateWithMembers(ctx, group, in.MemberIDs); err != nil {
		return nil, err
	}
	return group, nil
}

// GetMyGroups lists the caller's active groups sorted by last activity,
// each with last message, member count, unread count, and the caller's
// role. Unread is every non-deleted message from others sent after the
// caller joined.
func (s *GroupService) GetMyGroups(ctx context.Context, userID string) ([]models.GroupSummary, error) {
	memberships, err := s.groupRepo.ListActiveMembershipsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.GroupSummary, 0, len(memberships))
	for _, membership := range memberships {
		group, err := s.groupRepo.GetByID(ctx, membership.GroupID)
		if err != nil {
			return nil, err
		}
		if group == nil || group.IsDeleted {
			continue
		}

		summary := models.GroupSummary{
			ID:          group.ID,
			Name:        group.Name,
			Description: group.Description,
			Avatar:      group.Avatar,
			CreatedByID: group.CreatedByID,
			CreatedAt:   group.CreatedAt,
			UserRole:    membership.Role,
		}

		last, err := s.groupRepo.LatestMessage(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		if last != nil {
			summary.LastMessage = &models.MessagePreview{
				Content:   last.Content,
				CreatedAt: last.CreatedAt,
				SenderID:  last.SenderID,
			}
		}

		memberCount, err := s.groupRepo.CountActiveMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		summary.MemberCount = memberCount

		unread, err := s.groupRepo.CountMessagesFromOthersAfter(ctx, group.ID, userID, membership.JoinedAt)
		if err != nil {
			return nil, err
		}
		summary.UnreadCount = unread

		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return groupActivity(summaries[i]) > groupActivity(summaries[j])
	})
	return summaries, nil
}

func groupActivity(g models.GroupSummary) int64 {
	if g.LastMessage != nil {
		return g.LastMessage.CreatedAt
	}
	return g.CreatedAt
}

// GetGroupInfo returns the group header with its active members, or nil
// when the group is gone or the caller is not an active member.
func (s *GroupService) GetGroupInfo(ctx context.Context, userID string, groupID uint) (*models.GroupInfo, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil || group.IsDeleted {
		return nil, nil
	}

	membership, err := s.activeMembership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, nil
	}

	members, err := s.groupRepo.ListActiveMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]string, 0, len(members))
	for _, member := range members {
		memberIDs = append(memberIDs, member.UserID)
	}
	profiles, err := s.profileRepo.Summaries(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	info := &models.GroupInfo{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		Avatar:      group.Avatar,
		CreatedByID: group.CreatedByID,
		CreatedAt:   group.CreatedAt,
		UserRole:    membership.Role,
		Members:     make([]models.GroupMemberInfo, 0, len(members)),
	}
	for _, member := range members {
		row := models.GroupMemberInfo{
			UserID:   member.UserID,
			Username: "Unknown User",
			Role:     member.Role,
			JoinedAt: member.JoinedAt,
		}
		if profile, ok := profiles[member.UserID]; ok {
			row.Username = profile.Username
			row.Avatar = profile.Avatar
		}
		info.Members = append(info.Members, row)
	}
	return info, nil
}

func (s *GroupService) activeMembership(ctx context.Context, groupID uint, userID string) (*models.GroupMember, error) {
	membership, err := s.groupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil || !membership.IsActive {
		return nil, nil
	}
	return membership, nil
}

// AddMembers adds users to a group. Active members are left alone and
// previously departed ones are reactivated with a fresh join time.
// Admin only.
func (s *GroupService) AddMembers(ctx context.Context, userID string, groupID uint, memberIDs []string) error {
	membership, err := s.activeMembership(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if membership == nil || membership.Role != models.GroupRoleAdmin {
		return models.NewAuthorizationError("Only admins can add members")
	}

	for _, memberID := range memberIDs {
		existing, err := s.groupRepo.GetMembership(ctx, groupID, memberID)
		if err != nil {
			return err
		}
		switch {
		case existing == nil:
			member := &models.GroupMember{
				GroupID:  groupID,
				UserID:   memberID,
				Role:     models.GroupRoleMember,
				IsActive: true,
			}
			if err := s.groupRepo.AddMember(ctx, member); err != nil {
				return err
			}
		case !existing.IsActive:
			if err := s.groupRepo.SetMembershipActive(ctx, existing.ID, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// RemoveMember deactivates a membership. Admin only; the creator cannot
// be removed.
func (s *GroupService) RemoveMember(ctx context.Context, userID string, groupID uint, memberID string) error {
	membership, err := s.activeMembership(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if membership == nil || membership.Role != models.GroupRoleAdmin {
		return models.NewAuthorizationError("Only admins can remove members")
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group != nil && group.CreatedByID == memberID {
		return models.NewValidationError("Cannot remove group creator")
	}

	target, err := s.groupRepo.GetMembership(ctx, groupID, memberID)
	if err != nil {
		return err
	}
	if target != nil {
		return s.groupRepo.SetMembershipActive(ctx, target.ID, false)
	}
	return nil
}

// LeaveGroup deactivates the caller's own membership. The creator must
// delete the group instead.
func (s *GroupService) LeaveGroup(ctx context.Context, userID string, groupID uint) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group != nil && group.CreatedByID == userID {
		return models.NewValidationError("Group creator cannot leave. Transfer admin role or delete the group first.")
	}

	membership, err := s.groupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if membership != nil {
		return s.groupRepo.SetMembershipActive(ctx, membership.ID, false)
	}
	return nil
}

// DeleteGroup soft-deletes a group. Creator only. Member and message
// rows stay behind; reads skip deleted groups.
func (s *GroupService) DeleteGroup(ctx context.Context, userID string, groupID uint) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return models.NewNotFoundError("Group not found")
	}
	if group.CreatedByID != userID {
		return models.NewAuthorizationError("Only group creator can delete the group")
	}
	return s.groupRepo.SoftDelete(ctx, groupID)
}

// GetGroupMessages returns the group's messages oldest first with
// sender profiles. Non-members get an empty list.
func (s *GroupService) GetGroupMessages(ctx context.Context, userID string, groupID uint) ([]models.GroupMessage, error) {
	membership, err := s.activeMembership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return []models.GroupMessage{}, nil
	}

	messages, err := s.groupRepo.ListMessages(ctx, groupID)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]string, 0, len(messages))
	for _, message := range messages {
		senderIDs = append(senderIDs, message.SenderID)
	}
	profiles, err := s.profileRepo.Summaries(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	for i := range messages {
		sender := models.ProfileSummary{UserID: messages[i].SenderID, Username: "Unknown User"}
		if profile, ok := profiles[messages[i].SenderID]; ok {
			sender = profile
		}
		messages[i].Sender = &sender
	}
	return messages, nil
}

func (s *GroupService) SendGroupMessage(ctx context.Context, userID string, groupID uint, content string, images []string) (*models.GroupMessage, error) {
	membership, err := s.activeMembership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, models.NewAuthorizationError("You are not a member of this group")
	}

	message := &models.GroupMessage{
		GroupID:  groupID,
		SenderID: userID,
		Content:  content,
		Images:   images,
	}
	if err := s.groupRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// DeleteGroupMessage soft-deletes a message. The sender or a group
// admin may delete it.
func (s *GroupService) DeleteGroupMessage(ctx context.Context, userID string, messageID uint) error {
	message, err := s.groupRepo.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return models.NewNotFoundError("Message not found")
	}

	membership, err := s.activeMembership(ctx, message.GroupID, userID)
	if err != nil {
		return err
	}
	if membership == nil {
		return models.NewAuthorizationError("You are not a member of this group")
	}
	if message.SenderID != userID && membership.Role != models.GroupRoleAdmin {
		return models.NewAuthorizationError("You can only delete your own messages")
	}

	return s.groupRepo.SoftDeleteMessage(ctx, messageID)
}

// InitializeDefaultGroup creates the platform-wide default group owned
// by the given admin and enrolls every existing profile. Fails if a
// default group already exists.
func (s *GroupService) InitializeDefaultGroup(ctx context.Context, adminUserID string) (*models.Group, error) {
	existing, err := s.groupRepo.GetActiveSystemGroup(ctx, models.SystemGroupDefault)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Default group already exists")
	}

	profiles, err := s.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	memberIDs := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		if profile.UserID != adminUserID {
			memberIDs = append(memberIDs, profile.UserID)
		}
	}

	group := &models.Group{
		Name:        defaultGroupName,
		Description: defaultGroupDescription,
		CreatedByID: adminUserID,
	}
	if err := s.groupRepo.CreateWithMembers(ctx, group, memberIDs); err != nil {
		return nil, err
	}

	record := &models.SystemGroup{
		GroupID:  group.ID,
		Type:     models.SystemGroupDefault,
		IsActive: true,
	}
	if err := s.groupRepo.CreateSystemGroup(ctx, record); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) GetDefaultGroup(ctx context.Context) (*models.SystemGroup, error) {
	return s.groupRepo.GetActiveSystemGroup(ctx, models.SystemGroupDefault)
}

// AddUserToDefaultGroup enrolls a user in the default group, typically
// right after signup. A no-op when no default group exists yet.
func (s *GroupService) AddUserToDefaultGroup(ctx context.Context, userID string) error {
	record, err := s.groupRepo.GetActiveSystemGroup(ctx, models.SystemGroupDefault)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	existing, err := s.groupRepo.GetMembership(ctx, record.GroupID, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		if !existing.IsActive {
			return s.groupRepo.SetMembershipActive(ctx, existing.ID, true)
		}
		return nil
	}

	member := &models.GroupMember{
		GroupID:  record.GroupID,
		UserID:   userID,
		Role:     models.GroupRoleMember,
		IsActive: true,
	}
	return s.groupRepo.AddMember(ctx, member)
}
