package service

import (
	"context"
	"sort"

	"nexum/internal/models"
	"nexum/internal/repository"
)

// MessageService handles 1:1 conversations and their messages.
type MessageService struct {
	convRepo    repository.ConversationRepository
	profileRepo repository.ProfileRepository
}

func NewMessageService(convRepo repository.ConversationRepository, profileRepo repository.ProfileRepository) *MessageService {
	return &MessageService{convRepo: convRepo, profileRepo: profileRepo}
}

// GetOrCreateConversation returns the single conversation for the pair,
// creating it on first contact. Idempotent per unordered pair.
func (s *MessageService) GetOrCreateConversation(ctx context.Context, userID, otherUserID string) (*models.Conversation, error) {
	if userID == otherUserID {
		return nil, models.NewValidationError("Cannot create conversation with yourself")
	}

	p1, p2 := models.CanonicalPair(userID, otherUserID)

	existing, err := s.convRepo.GetByPair(ctx, p1, p2)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	conversation := &models.Conversation{Participant1ID: p1, Participant2ID: p2}
	if err := s.convRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// GetMyConversations lists the caller's conversations newest-activity
// first, each enriched with the other participant's profile, the last
// message preview, and the unread count.
func (s *MessageService) GetMyConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	conversations, err := s.convRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversationActivity(conversations[i]) > conversationActivity(conversations[j])
	})

	otherIDs := make([]string, 0, len(conversations))
	for _, conv := range conversations {
		otherIDs = append(otherIDs, conv.OtherParticipant(userID))
	}
	profiles, err := s.profileRepo.Summaries(ctx, otherIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		summary := models.ConversationSummary{Conversation: conv}

		if profile, ok := profiles[conv.OtherParticipant(userID)]; ok {
			summary.OtherUser = &profile
		}

		last, err := s.convRepo.LatestMessage(ctx, conv.ID)
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

		unread, err := s.convRepo.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			return nil, err
		}
		summary.UnreadCount = unread

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func conversationActivity(c models.Conversation) int64 {
	if c.LastMessageAt != nil {
		return *c.LastMessageAt
	}
	return c.CreatedAt
}

// GetConversationInfo returns the header payload for a conversation, or
// nil when the conversation does not exist, the caller is not a
// participant, or the other side has no profile yet.
func (s *MessageService) GetConversationInfo(ctx context.Context, userID string, conversationID uint) (*models.ConversationInfo, error) {
	conversation, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil || !conversation.HasParticipant(userID) {
		return nil, nil
	}

	otherID := conversation.OtherParticipant(userID)
	profile, err := s.profileRepo.GetByUserID(ctx, otherID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	return &models.ConversationInfo{
		ConversationID: conversation.ID,
		OtherUser:      profile.Summary(),
	}, nil
}

// GetMessages returns the conversation's messages oldest first with
// sender profiles attached. A missing conversation yields an empty
// list; a non-participant caller is rejected.
func (s *MessageService) GetMessages(ctx context.Context, userID string, conversationID uint) ([]models.Message, error) {
	conversation, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return []models.Message{}, nil
	}
	if !conversation.HasParticipant(userID) {
		return nil, models.NewAuthorizationError("Not authorized to view this conversation")
	}

	messages, err := s.convRepo.ListMessages(ctx, conversationID)
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
		if profile, ok := profiles[messages[i].SenderID]; ok {
			messages[i].Sender = &profile
		}
	}
	return messages, nil
}

func (s *MessageService) SendMessage(ctx context.Context, userID string, conversationID uint, content string, images []string) (*models.Message, error) {
	conversation, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, models.NewNotFoundError("Conversation not found")
	}
	if !conversation.HasParticipant(userID) {
		return nil, models.NewAuthorizationError("Not authorized to send messages in this conversation")
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
		Images:         images,
	}
	if err := s.convRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// MarkAsRead flags every message from the other participant as read.
func (s *MessageService) MarkAsRead(ctx context.Context, userID string, conversationID uint) error {
	return s.convRepo.MarkAllRead(ctx, conversationID, userID)
}

func (s *MessageService) DeleteMessage(ctx context.Context, userID string, messageID uint) error {
	message, err := s.convRepo.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return models.NewNotFoundError("Message not found")
	}
	if message.SenderID != userID {
		return models.NewAuthorizationError("Not authorized to delete this message")
	}
	return s.convRepo.SoftDeleteMessage(ctx, messageID)
}
