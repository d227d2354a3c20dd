package service

import (
	"context"
	"errors"
	"testing"

	"nexum/internal/models"
)

func adminMembership(groupID uint, userID string) *models.GroupMember {
	return &models.GroupMember{ID: 1, GroupID: groupID, UserID: userID, Role: models.GroupRoleAdmin, IsActive: true}
}

func plainMembership(groupID uint, userID string) *models.GroupMember {
	return &models.GroupMember{ID: 2, GroupID: groupID, UserID: userID, Role: models.GroupRoleMember, IsActive: true}
}

func TestGroupServiceCreateRequiresName(t *testing.T) {
	svc := NewGroupService(noopGroupRepo(), noopProfileRepo())

	_, err := svc.CreateGroup(context.Background(), "u1", CreateGroupInput{Name: "  "})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation error, got %#v", err)
	}
}

func TestGroupServiceAddMembersNonAdmin(t *testing.T) {
	groupRepo := noopGroupRepo()
	groupRepo.getMembershipFn = func(_ context.Context, groupID uint, userID string) (*models.GroupMember, error) {
		return plainMembership(groupID, userID), nil
	}

	svc := NewGroupService(groupRepo, noopProfileRepo())
	err := svc.AddMembers(context.Background(), "member", 1, []string{"newbie"})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeAuthorizationDenied || appErr.Message != "Only admins can add members" {
		t.Fatalf("expected admin-only error, got %#v", err)
	}
}

func TestGroupServiceAddMembersReactivatesDeparted(t *testing.T) {
	departed := &models.GroupMember{ID: 9, GroupID: 1, UserID: "ghost", Role: models.GroupRoleMember, IsActive: false}
	groupRepo := noopGroupRepo()
	groupRepo.getMembershipFn = func(_ context.Context, groupID uint, userID string) (*models.GroupMember, error) {
		if userID == "admin" {
			return adminMembership(groupID, userID), nil
		}
		if userID == "ghost" {
			return departed, nil
		}
		return nil, nil
	}
	groupRepo.addMemberFn = func(context.Context, *models.GroupMember) error {
		t.Fatal("departed member must be reactivated, not re-added")
		return nil
	}
	var reactivatedID uint
	var reactivatedTo bool
	groupRepo.setMembershipActiveFn = func(_ context.Context, membershipID uint, active bool) error {
		reactivatedID = membershipID
		reactivatedTo = active
		return nil
	}

	svc := NewGroupService(groupRepo, noopProfileRepo())
	if err := svc.AddMembers(context.Background(), "admin", 1, []string{"ghost"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reactivatedID != 9 || !reactivatedTo {
		t.Fatalf("expected membership 9 reactivated, got %d active=%v", reactivatedID, reactivatedTo)
	}
}

func TestGroupServiceAddMembersSkipsActive(t *testing.T) {
	groupRepo := noopGroupRepo()
	groupRepo.getMembershipFn = func(_ context.Context, groupID uint, userID string) (*models.GroupMember, error) {
		if userID == "admin" {
			return adminMembership(groupID, userID), nil
		}
		return plainMembership(groupID, userID), nil
	}
	groupRepo.addMemberFn = func(context.Context, *models.GroupMember) error {
		t.Fatal("active member must not be re-added")
		return nil
	}
	groupRepo.setMembershipActiveFn = func(context.Context, uint, bool) error {
		t.Fatal("active member must not be touched")
		return nil
	}

	svc := NewGroupService(groupRepo, noopProfileRepo())
	if err := svc.AddMembers(context.Background(), "admin", 1, []string{"already"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGroupServiceRemoveCreator(t *testing.T) {
	groupRepo := noopGroupRepo()
	groupRepo.getMembershipFn = func(_ context.Context, groupID uint, userID string) (*models.GroupMember, error) {
		return adminMembership(groupID, userID), nil
	}
	groupRepo.getByIDFn = func(context.Context, uint) (*models.Group, error) {
		return &models.Group{ID: 1, Name: "g", CreatedByID: "creator"}, nil
	}

	svc := NewGroupService(groupRepo, noopProfileRepo())
	err := svc.RemoveMember(context.Background(), "admin", 1, "creator")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation || appErr.Message != "Cannot remove group creator" {
		t.Fatalf("expected creator-protection error, got %#v", err)
	}
}

func TestGroupServiceCreatorCannotLeave(t *testing.T) {
	groupRepo := noopGroupRepo()
	groupRepo.getByIDFn = func(context.Context, uint) (*models.Group, error) {
		return &models.Group{ID: 1, Name: "g", CreatedByID: "creator"}, nil
	}

	svc := NewGroupService(groupRepo, noopProfileRepo())
	err := svc.LeaveGroup(context.Background(), "creator", 1)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation error, got %#v", err)
	}
	if appErr.Message != "Group creator cannot leave. Transfer admin role or delete the group first." {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
}

func TestGroupServiceDeleteNotCreator(t *testing.T) {
	groupRepo := noopGroupRepo()
	groupRepo.getByIDFn = func(context.Context, uint) (*models.Group, error) {
		return &models.Group{ID: 1, Name: "g", CreatedByID: "creator"}, nil
	}

	svc := NewGroupService(groupRepo, noopProfileRepo())
	err := svc.DeleteGroup(context.Background(), "admin2", 1)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeAuthorizationDenied {
		t.Fatalf("expected authorization error, got %#v", err)
	}
}

func TestGroupServiceSendMessageNonMember(t *testing.T) {
	svc := NewGroupService(noopGroupRepo(), noopProfileRepo())

	_, err := svc.SendGroupMessage(context.Background(), "outsider", 1, "hi", nil)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeAuthorizationDenied || appErr.Message != "You are not a member of this group" {
		t.Fatalf("expected membership error, got %#v", err)
	}
}

func TestGroupServiceGetMessagesNonMemberEmpty(t *testing.T) {
	svc := NewGroupService(noopGroupRepo(), noopProfileRepo())

	messages, err := svc.GetGroupMessages(context.Background(), "outsider", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if messages == nil || len(messages) != 0 {
		t.Fatalf("expected empty slice, got %#v", messages)
	}
}

func TestGroupServiceDeleteMessagePermissions(t *testing.T) {
	groupRepo := noopGroupRepo()
	groupRepo.getMessageFn = func(context.Context, uint) (*models.GroupMessage, error) {
		return &models.GroupMessage{ID: 4, GroupID: 1, SenderID: "author"}, nil
	}
	groupRepo.getMembershipFn = func(_ context.Context, groupID uint, userID string) (*models.GroupMember, error) {
		if userID == "groupadmin" {
			return adminMembership(groupID, userID), nil
		}
		return plainMembership(groupID, userID), nil
	}
	deleted := 0
	groupRepo.softDeleteMessageFn = func(context.Context, uint) error {
		deleted++
		return nil
	}

	svc := NewGroupService(groupRepo, noopProfileRepo())

	// Another plain member cannot delete it.
	err := svc.DeleteGroupMessage(context.Background(), "bystander", 4)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeAuthorizationDenied || appErr.Message != "You can only delete your own messages" {
		t.Fatalf("expected own-messages error, got %#v", err)
	}

	// The sender can.
	if err := svc.DeleteGroupMessage(context.Background(), "author", 4); err != nil {
		t.Fatalf("unexpected error for sender: %v", err)
	}
	// So can a group admin.
	if err := svc.DeleteGroupMessage(context.Background(), "groupadmin", 4); err != nil {
		t.Fatalf("unexpected error for admin: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deletes, got %d", deleted)
	}
}

func TestGroupServiceInitializeDefaultGroupOnce(t *testing.T) {
	groupRepo := noopGroupRepo()
	groupRepo.getActiveSystemGroupFn = func(context.Context, models.SystemGroupType) (*models.SystemGroup, error) {
		return &models.SystemGroup{ID: 1, GroupID: 5, Type: models.SystemGroupDefault, IsActive: true}, nil
	}

	svc := NewGroupService(groupRepo, noopProfileRepo())
	_, err := svc.InitializeDefaultGroup(context.Background(), "admin")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeConflict || appErr.Message != "Default group already exists" {
		t.Fatalf("expected conflict, got %#v", err)
	}
}

func TestGroupServiceInitializeDefaultGroupEnrollsEveryone(t *testing.T) {
	profileRepo := noopProfileRepo()
	profileRepo.listAllFn = func(context.Context) ([]models.Profile, error) {
		return []models.Profile{
			{UserID: "admin", Username: "admin"},
			{UserID: "a", Username: "a_user"},
			{UserID: "b", Username: "b_user"},
		}, nil
	}
	groupRepo := noopGroupRepo()
	var gotMembers []string
	groupRepo.createWithMembersFn = func(_ context.Context, group *models.Group, memberIDs []string) error {
		group.ID = 77
		gotMembers = memberIDs
		return nil
	}
	var record *models.SystemGroup
	groupRepo.createSystemGroupFn = func(_ context.Context, r *models.SystemGroup) error {
		record = r
		return nil
	}

	svc := NewGroupService(groupRepo, profileRepo)
	group, err := svc.InitializeDefaultGroup(context.Background(), "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if group.Name != "Nexum Chat" || group.CreatedByID != "admin" {
		t.Fatalf("unexpected group %#v", group)
	}
	// The admin becomes creator and must not appear in the member list.
	if len(gotMembers) != 2 || gotMembers[0] != "a" || gotMembers[1] != "b" {
		t.Fatalf("unexpected members %v", gotMembers)
	}
	if record == nil || record.GroupID != 77 || record.Type != models.SystemGroupDefault {
		t.Fatalf("unexpected system group record %#v", record)
	}
}

func TestGroupServiceAddUserToDefaultGroupNoop(t *testing.T) {
	groupRepo := noopGroupRepo()
	groupRepo.addMemberFn = func(context.Context, *models.GroupMember) error {
		t.Fatal("no default group exists, nothing should be added")
		return nil
	}

	svc := NewGroupService(groupRepo, noopProfileRepo())
	if err := svc.AddUserToDefaultGroup(context.Background(), "newbie"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGroupServiceGetMyGroupsEnrichment(t *testing.T) {
	groups := map[uint]*models.Group{
		1: {ID: 1, Name: "Hikers", CreatedByID: "alice", CreatedAt: 1000},
		2: {ID: 2, Name: "Ghost Town", CreatedByID: "alice", CreatedAt: 3000, IsDeleted: true},
		3: {ID: 3, Name: "Chess Club", CreatedByID: "bob", CreatedAt: 4000},
	}

	groupRepo := noopGroupRepo()
	groupRepo.listActiveMembershipsForUserFn = func(_ context.Context, userID string) ([]models.GroupMember, error) {
		return []models.GroupMember{
			{ID: 10, GroupID: 1, UserID: userID, Role: models.GroupRoleMember, JoinedAt: 2000, IsActive: true},
			{ID: 11, GroupID: 2, UserID: userID, Role: models.GroupRoleMember, JoinedAt: 2000, IsActive: true},
			{ID: 12, GroupID: 3, UserID: userID, Role: models.GroupRoleAdmin, JoinedAt: 3500, IsActive: true},
		}, nil
	}
	groupRepo.getByIDFn = func(_ context.Context, id uint) (*models.Group, error) {
		return groups[id], nil
	}
	groupRepo.latestMessageFn = func(_ context.Context, groupID uint) (*models.GroupMessage, error) {
		if groupID == 1 {
			return &models.GroupMessage{GroupID: 1, SenderID: "alice", Content: "trail at 9", CreatedAt: 5000}, nil
		}
		return nil, nil
	}
	groupRepo.countActiveMembersFn = func(_ context.Context, groupID uint) (int64, error) {
		if groupID == 1 {
			return 2, nil
		}
		return 5, nil
	}
	var unreadAfter []int64
	groupRepo.countMessagesFromOthersAfterFn = func(_ context.Context, groupID uint, _ string, afterMs int64) (int64, error) {
		unreadAfter = append(unreadAfter, afterMs)
		if groupID == 1 {
			return 3, nil
		}
		return 0, nil
	}

	svc := NewGroupService(groupRepo, noopProfileRepo())
	summaries, err := svc.GetMyGroups(context.Background(), "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("deleted group should be skipped; got %d summaries", len(summaries))
	}
	// Last message beats creation time for ordering.
	if summaries[0].ID != 1 || summaries[1].ID != 3 {
		t.Fatalf("expected order [1 3], got [%d %d]", summaries[0].ID, summaries[1].ID)
	}

	hikers := summaries[0]
	if hikers.MemberCount != 2 || hikers.UserRole != models.GroupRoleMember {
		t.Fatalf("unexpected hikers enrichment %#v", hikers)
	}
	if hikers.UnreadCount != 3 {
		t.Fatalf("expected 3 unread in hikers, got %d", hikers.UnreadCount)
	}
	if hikers.LastMessage == nil || hikers.LastMessage.Content != "trail at 9" || hikers.LastMessage.SenderID != "alice" {
		t.Fatalf("unexpected last message %#v", hikers.LastMessage)
	}

	chess := summaries[1]
	if chess.UserRole != models.GroupRoleAdmin || chess.MemberCount != 5 {
		t.Fatalf("unexpected chess enrichment %#v", chess)
	}
	if chess.LastMessage != nil || chess.UnreadCount != 0 {
		t.Fatalf("expected quiet chess group, got %#v", chess)
	}

	// Unread counting starts at each membership's join time.
	if len(unreadAfter) != 2 || unreadAfter[0] != 2000 || unreadAfter[1] != 3500 {
		t.Fatalf("expected unread counted after join times [2000 3500], got %v", unreadAfter)
	}
}
