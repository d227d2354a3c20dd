package service

import (
	"context"

	"nexum/internal/models"
)

type profileRepoStub struct {
	getByUserIDFn   func(context.Context, string) (*models.Profile, error)
	getByUsernameFn func(context.Context, string) (*models.Profile, error)
	createFn        func(context.Context, *models.Profile) error
	updateFn        func(context.Context, *models.Profile) error
	searchFn        func(context.Context, string, int) ([]models.Profile, error)
	listAllFn       func(context.Context) ([]models.Profile, error)
	summariesFn     func(context.Context, []string) (map[string]models.ProfileSummary, error)
	countFn         func(context.Context) (int64, error)
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) Search(ctx context.Context, term string, limit int) ([]models.Profile, error) {
	return s.searchFn(ctx, term, limit)
}
func (s *profileRepoStub) ListAll(ctx context.Context) ([]models.Profile, error) {
	return s.listAllFn(ctx)
}
func (s *profileRepoStub) Summaries(ctx context.Context, userIDs []string) (map[string]models.ProfileSummary, error) {
	return s.summariesFn(ctx, userIDs)
}
func (s *profileRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn:   func(context.Context, string) (*models.Profile, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.Profile, error) { return nil, nil },
		createFn:        func(context.Context, *models.Profile) error { return nil },
		updateFn:        func(context.Context, *models.Profile) error { return nil },
		searchFn:        func(context.Context, string, int) ([]models.Profile, error) { return nil, nil },
		listAllFn:       func(context.Context) ([]models.Profile, error) { return nil, nil },
		summariesFn: func(context.Context, []string) (map[string]models.ProfileSummary, error) {
			return map[string]models.ProfileSummary{}, nil
		},
		countFn: func(context.Context) (int64, error) { return 0, nil },
	}
}

type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	listFn          func(context.Context, int, int) ([]models.Post, error)
	listByUserFn    func(context.Context, string) ([]models.Post, error)
	updateFn        func(context.Context, *models.Post) error
	softDeleteFn    func(context.Context, uint) error
	deleteCascadeFn func(context.Context, uint) error
	countFn         func(context.Context) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID string) ([]models.Post, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}
func (s *postRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(context.Context, *models.Post) error { return nil },
		getByIDFn:       func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn:          func(context.Context, int, int) ([]models.Post, error) { return nil, nil },
		listByUserFn:    func(context.Context, string) ([]models.Post, error) { return nil, nil },
		updateFn:        func(context.Context, *models.Post) error { return nil },
		softDeleteFn:    func(context.Context, uint) error { return nil },
		deleteCascadeFn: func(context.Context, uint) error { return nil },
		countFn:         func(context.Context) (int64, error) { return 0, nil },
	}
}

type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint) (*models.Comment, error)
	listForPostFn  func(context.Context, uint) ([]models.Comment, error)
	updateFn       func(context.Context, *models.Comment) error
	softDeleteFn   func(context.Context, uint) error
	countForPostFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listForPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}
func (s *commentRepoStub) CountForPost(ctx context.Context, postID uint) (int64, error) {
	return s.countForPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:       func(context.Context, *models.Comment) error { return nil },
		getByIDFn:      func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listForPostFn:  func(context.Context, uint) ([]models.Comment, error) { return nil, nil },
		updateFn:       func(context.Context, *models.Comment) error { return nil },
		softDeleteFn:   func(context.Context, uint) error { return nil },
		countForPostFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type likeRepoStub struct {
	createForPostFn    func(context.Context, string, uint) (*models.Like, error)
	createForCommentFn func(context.Context, string, uint) (*models.Like, error)
	deleteForPostFn    func(context.Context, string, uint) error
	deleteForCommentFn func(context.Context, string, uint) error
	userLikedPostFn    func(context.Context, string, uint) (bool, error)
	userLikedCommentFn func(context.Context, string, uint) (bool, error)
	countForPostFn     func(context.Context, uint) (int64, error)
	countForCommentFn  func(context.Context, uint) (int64, error)
	listForPostFn      func(context.Context, uint) ([]models.Like, error)
}

func (s *likeRepoStub) CreateForPost(ctx context.Context, userID string, postID uint) (*models.Like, error) {
	return s.createForPostFn(ctx, userID, postID)
}
func (s *likeRepoStub) CreateForComment(ctx context.Context, userID string, commentID uint) (*models.Like, error) {
	return s.createForCommentFn(ctx, userID, commentID)
}
func (s *likeRepoStub) DeleteForPost(ctx context.Context, userID string, postID uint) error {
	return s.deleteForPostFn(ctx, userID, postID)
}
func (s *likeRepoStub) DeleteForComment(ctx context.Context, userID string, commentID uint) error {
	return s.deleteForCommentFn(ctx, userID, commentID)
}
func (s *likeRepoStub) UserLikedPost(ctx context.Context, userID string, postID uint) (bool, error) {
	return s.userLikedPostFn(ctx, userID, postID)
}
func (s *likeRepoStub) UserLikedComment(ctx context.Context, userID string, commentID uint) (bool, error) {
	return s.userLikedCommentFn(ctx, userID, commentID)
}
func (s *likeRepoStub) CountForPost(ctx context.Context, postID uint) (int64, error) {
	return s.countForPostFn(ctx, postID)
}
func (s *likeRepoStub) CountForComment(ctx context.Context, commentID uint) (int64, error) {
	return s.countForCommentFn(ctx, commentID)
}
func (s *likeRepoStub) ListForPost(ctx context.Context, postID uint) ([]models.Like, error) {
	return s.listForPostFn(ctx, postID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createForPostFn:    func(context.Context, string, uint) (*models.Like, error) { return &models.Like{}, nil },
		createForCommentFn: func(context.Context, string, uint) (*models.Like, error) { return &models.Like{}, nil },
		deleteForPostFn:    func(context.Context, string, uint) error { return nil },
		deleteForCommentFn: func(context.Context, string, uint) error { return nil },
		userLikedPostFn:    func(context.Context, string, uint) (bool, error) { return false, nil },
		userLikedCommentFn: func(context.Context, string, uint) (bool, error) { return false, nil },
		countForPostFn:     func(context.Context, uint) (int64, error) { return 0, nil },
		countForCommentFn:  func(context.Context, uint) (int64, error) { return 0, nil },
		listForPostFn:      func(context.Context, uint) ([]models.Like, error) { return nil, nil },
	}
}

type followRepoStub struct {
	createFn          func(context.Context, string, string) error
	deleteFn          func(context.Context, string, string) error
	existsFn          func(context.Context, string, string) (bool, error)
	countFollowersFn  func(context.Context, string) (int64, error)
	countFollowingFn  func(context.Context, string) (int64, error)
	listFollowerIDsFn func(context.Context, string) ([]string, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followingID string) error {
	return s.createFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followingID string) error {
	return s.deleteFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.existsFn(ctx, followerID, followingID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
func (s *followRepoStub) ListFollowerIDs(ctx context.Context, userID string) ([]string, error) {
	return s.listFollowerIDsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:          func(context.Context, string, string) error { return nil },
		deleteFn:          func(context.Context, string, string) error { return nil },
		existsFn:          func(context.Context, string, string) (bool, error) { return false, nil },
		countFollowersFn:  func(context.Context, string) (int64, error) { return 0, nil },
		countFollowingFn:  func(context.Context, string) (int64, error) { return 0, nil },
		listFollowerIDsFn: func(context.Context, string) ([]string, error) { return nil, nil },
	}
}

type convRepoStub struct {
	getByPairFn         func(context.Context, string, string) (*models.Conversation, error)
	createFn            func(context.Context, *models.Conversation) error
	getByIDFn           func(context.Context, uint) (*models.Conversation, error)
	listForUserFn       func(context.Context, string) ([]models.Conversation, error)
	createMessageFn     func(context.Context, *models.Message) error
	listMessagesFn      func(context.Context, uint) ([]models.Message, error)
	latestMessageFn     func(context.Context, uint) (*models.Message, error)
	countUnreadFn       func(context.Context, uint, string) (int64, error)
	markAllReadFn       func(context.Context, uint, string) error
	getMessageFn        func(context.Context, uint) (*models.Message, error)
	softDeleteMessageFn func(context.Context, uint) error
}

func (s *convRepoStub) GetByPair(ctx context.Context, p1, p2 string) (*models.Conversation, error) {
	return s.getByPairFn(ctx, p1, p2)
}
func (s *convRepoStub) Create(ctx context.Context, conversation *models.Conversation) error {
	return s.createFn(ctx, conversation)
}
func (s *convRepoStub) GetByID(ctx context.Context, id uint) (*models.Conversation, error) {
	return s.getByIDFn(ctx, id)
}
func (s *convRepoStub) ListForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	return s.listForUserFn(ctx, userID)
}
func (s *convRepoStub) CreateMessage(ctx context.Context, message *models.Message) error {
	return s.createMessageFn(ctx, message)
}
func (s *convRepoStub) ListMessages(ctx context.Context, conversationID uint) ([]models.Message, error) {
	return s.listMessagesFn(ctx, conversationID)
}
func (s *convRepoStub) LatestMessage(ctx context.Context, conversationID uint) (*models.Message, error) {
	return s.latestMessageFn(ctx, conversationID)
}
func (s *convRepoStub) CountUnread(ctx context.Context, conversationID uint, readerID string) (int64, error) {
	return s.countUnreadFn(ctx, conversationID, readerID)
}
func (s *convRepoStub) MarkAllRead(ctx context.Context, conversationID uint, readerID string) error {
	return s.markAllReadFn(ctx, conversationID, readerID)
}
func (s *convRepoStub) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	return s.getMessageFn(ctx, id)
}
func (s *convRepoStub) SoftDeleteMessage(ctx context.Context, id uint) error {
	return s.softDeleteMessageFn(ctx, id)
}

func noopConvRepo() *convRepoStub {
	return &convRepoStub{
		getByPairFn:         func(context.Context, string, string) (*models.Conversation, error) { return nil, nil },
		createFn:            func(context.Context, *models.Conversation) error { return nil },
		getByIDFn:           func(context.Context, uint) (*models.Conversation, error) { return nil, nil },
		listForUserFn:       func(context.Context, string) ([]models.Conversation, error) { return nil, nil },
		createMessageFn:     func(context.Context, *models.Message) error { return nil },
		listMessagesFn:      func(context.Context, uint) ([]models.Message, error) { return nil, nil },
		latestMessageFn:     func(context.Context, uint) (*models.Message, error) { return nil, nil },
		countUnreadFn:       func(context.Context, uint, string) (int64, error) { return 0, nil },
		markAllReadFn:       func(context.Context, uint, string) error { return nil },
		getMessageFn:        func(context.Context, uint) (*models.Message, error) { return nil, nil },
		softDeleteMessageFn: func(context.Context, uint) error { return nil },
	}
}

type groupRepoStub struct {
	createWithMembersFn            func(context.Context, *models.Group, []string) error
	getByIDFn                      func(context.Context, uint) (*models.Group, error)
	softDeleteFn                   func(context.Context, uint) error
	getMembershipFn                func(context.Context, uint, string) (*models.GroupMember, error)
	listActiveMembershipsForUserFn func(context.Context, string) ([]models.GroupMember, error)
	listActiveMembersFn            func(context.Context, uint) ([]models.GroupMember, error)
	countActiveMembersFn           func(context.Context, uint) (int64, error)
	addMemberFn                    func(context.Context, *models.GroupMember) error
	setMembershipActiveFn          func(context.Context, uint, bool) error
	createMessageFn                func(context.Context, *models.GroupMessage) error
	listMessagesFn                 func(context.Context, uint) ([]models.GroupMessage, error)
	latestMessageFn                func(context.Context, uint) (*models.GroupMessage, error)
	countMessagesFromOthersAfterFn func(context.Context, uint, string, int64) (int64, error)
	getMessageFn                   func(context.Context, uint) (*models.GroupMessage, error)
	softDeleteMessageFn            func(context.Context, uint) error
	getActiveSystemGroupFn         func(context.Context, models.SystemGroupType) (*models.SystemGroup, error)
	createSystemGroupFn            func(context.Context, *models.SystemGroup) error
}

func (s *groupRepoStub) CreateWithMembers(ctx context.Context, group *models.Group, memberIDs []string) error {
	return s.createWithMembersFn(ctx, group, memberIDs)
}
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}
func (s *groupRepoStub) GetMembership(ctx context.Context, groupID uint, userID string) (*models.GroupMember, error) {
	return s.getMembershipFn(ctx, groupID, userID)
}
func (s *groupRepoStub) ListActiveMembershipsForUser(ctx context.Context, userID string) ([]models.GroupMember, error) {
	return s.listActiveMembershipsForUserFn(ctx, userID)
}
func (s *groupRepoStub) ListActiveMembers(ctx context.Context, groupID uint) ([]models.GroupMember, error) {
	return s.listActiveMembersFn(ctx, groupID)
}
func (s *groupRepoStub) CountActiveMembers(ctx context.Context, groupID uint) (int64, error) {
	return s.countActiveMembersFn(ctx, groupID)
}
func (s *groupRepoStub) AddMember(ctx context.Context, member *models.GroupMember) error {
	return s.addMemberFn(ctx, member)
}
func (s *groupRepoStub) SetMembershipActive(ctx context.Context, membershipID uint, active bool) error {
	return s.setMembershipActiveFn(ctx, membershipID, active)
}
func (s *groupRepoStub) CreateMessage(ctx context.Context, message *models.GroupMessage) error {
	return s.createMessageFn(ctx, message)
}
func (s *groupRepoStub) ListMessages(ctx context.Context, groupID uint) ([]models.GroupMessage, error) {
	return s.listMessagesFn(ctx, groupID)
}
func (s *groupRepoStub) LatestMessage(ctx context.Context, groupID uint) (*models.GroupMessage, error) {
	return s.latestMessageFn(ctx, groupID)
}
func (s *groupRepoStub) CountMessagesFromOthersAfter(ctx context.Context, groupID uint, userID string, afterMs int64) (int64, error) {
	return s.countMessagesFromOthersAfterFn(ctx, groupID, userID, afterMs)
}
func (s *groupRepoStub) GetMessage(ctx context.Context, id uint) (*models.GroupMessage, error) {
	return s.getMessageFn(ctx, id)
}
func (s *groupRepoStub) SoftDeleteMessage(ctx context.Context, id uint) error {
	return s.softDeleteMessageFn(ctx, id)
}
func (s *groupRepoStub) GetActiveSystemGroup(ctx context.Context, groupType models.SystemGroupType) (*models.SystemGroup, error) {
	return s.getActiveSystemGroupFn(ctx, groupType)
}
func (s *groupRepoStub) CreateSystemGroup(ctx context.Context, record *models.SystemGroup) error {
	return s.createSystemGroupFn(ctx, record)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		createWithMembersFn: func(context.Context, *models.Group, []string) error { return nil },
		getByIDFn:           func(context.Context, uint) (*models.Group, error) { return &models.Group{}, nil },
		softDeleteFn:        func(context.Context, uint) error { return nil },
		getMembershipFn:     func(context.Context, uint, string) (*models.GroupMember, error) { return nil, nil },
		listActiveMembershipsForUserFn: func(context.Context, string) ([]models.GroupMember, error) {
			return nil, nil
		},
		listActiveMembersFn:   func(context.Context, uint) ([]models.GroupMember, error) { return nil, nil },
		countActiveMembersFn:  func(context.Context, uint) (int64, error) { return 0, nil },
		addMemberFn:           func(context.Context, *models.GroupMember) error { return nil },
		setMembershipActiveFn: func(context.Context, uint, bool) error { return nil },
		createMessageFn:       func(context.Context, *models.GroupMessage) error { return nil },
		listMessagesFn:        func(context.Context, uint) ([]models.GroupMessage, error) { return nil, nil },
		latestMessageFn:       func(context.Context, uint) (*models.GroupMessage, error) { return nil, nil },
		countMessagesFromOthersAfterFn: func(context.Context, uint, string, int64) (int64, error) {
			return 0, nil
		},
		getMessageFn:        func(context.Context, uint) (*models.GroupMessage, error) { return nil, nil },
		softDeleteMessageFn: func(context.Context, uint) error { return nil },
		getActiveSystemGroupFn: func(context.Context, models.SystemGroupType) (*models.SystemGroup, error) {
			return nil, nil
		},
		createSystemGroupFn: func(context.Context, *models.SystemGroup) error { return nil },
	}
}

type roleRepoStub struct {
	getByUserIDFn func(context.Context, string) (*models.UserRole, error)
}

func (s *roleRepoStub) GetByUserID(ctx context.Context, userID string) (*models.UserRole, error) {
	return s.getByUserIDFn(ctx, userID)
}

type imageDeleterStub struct {
	deleteFn func(context.Context, string) error
}

func (s *imageDeleterStub) Delete(ctx context.Context, publicID string) error {
	return s.deleteFn(ctx, publicID)
}
