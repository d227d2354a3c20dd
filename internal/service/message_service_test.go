package service

import (
	"context"
	"errors"
	"testing"

	"nexum/internal/models"
)

func TestMessageServiceSelfConversation(t *testing.T) {
	svc := NewMessageService(noopConvRepo(), noopProfileRepo())

	_, err := svc.GetOrCreateConversation(context.Background(), "u1", "u1")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation error, got %#v", err)
	}
}

func TestMessageServiceCanonicalPairOrder(t *testing.T) {
	convRepo := noopConvRepo()
	var gotP1, gotP2 string
	convRepo.getByPairFn = func(_ context.Context, p1, p2 string) (*models.Conversation, error) {
		gotP1, gotP2 = p1, p2
		return nil, nil
	}
	var created *models.Conversation
	convRepo.createFn = func(_ context.Context, c *models.Conversation) error {
		created = c
		return nil
	}

	svc := NewMessageService(convRepo, noopProfileRepo())
	// The higher ID initiates; storage order must still be canonical.
	if _, err := svc.GetOrCreateConversation(context.Background(), "zed", "amy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotP1 != "amy" || gotP2 != "zed" {
		t.Fatalf("expected canonical lookup (amy, zed), got (%s, %s)", gotP1, gotP2)
	}
	if created == nil || created.Participant1ID != "amy" || created.Participant2ID != "zed" {
		t.Fatalf("expected canonical storage order, got %#v", created)
	}
}

func TestMessageServiceGetOrCreateReturnsExisting(t *testing.T) {
	convRepo := noopConvRepo()
	convRepo.getByPairFn = func(context.Context, string, string) (*models.Conversation, error) {
		return &models.Conversation{ID: 11, Participant1ID: "amy", Participant2ID: "zed"}, nil
	}
	convRepo.createFn = func(context.Context, *models.Conversation) error {
		t.Fatal("create must not run when the conversation exists")
		return nil
	}

	svc := NewMessageService(convRepo, noopProfileRepo())
	conv, err := svc.GetOrCreateConversation(context.Background(), "zed", "amy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.ID != 11 {
		t.Fatalf("expected existing conversation, got %#v", conv)
	}
}

func TestMessageServiceGetMessagesMissingConversation(t *testing.T) {
	svc := NewMessageService(noopConvRepo(), noopProfileRepo())

	messages, err := svc.GetMessages(context.Background(), "u1", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if messages == nil || len(messages) != 0 {
		t.Fatalf("expected empty slice, got %#v", messages)
	}
}

func TestMessageServiceGetMessagesNonParticipant(t *testing.T) {
	convRepo := noopConvRepo()
	convRepo.getByIDFn = func(context.Context, uint) (*models.Conversation, error) {
		return &models.Conversation{ID: 1, Participant1ID: "amy", Participant2ID: "zed"}, nil
	}

	svc := NewMessageService(convRepo, noopProfileRepo())
	_, err := svc.GetMessages(context.Background(), "intruder", 1)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeAuthorizationDenied {
		t.Fatalf("expected authorization error, got %#v", err)
	}
}

func TestMessageServiceSendToMissingConversation(t *testing.T) {
	svc := NewMessageService(noopConvRepo(), noopProfileRepo())

	_, err := svc.SendMessage(context.Background(), "u1", 42, "hi", nil)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}

func TestMessageServiceSendNonParticipant(t *testing.T) {
	convRepo := noopConvRepo()
	convRepo.getByIDFn = func(context.Context, uint) (*models.Conversation, error) {
		return &models.Conversation{ID: 1, Participant1ID: "amy", Participant2ID: "zed"}, nil
	}

	svc := NewMessageService(convRepo, noopProfileRepo())
	_, err := svc.SendMessage(context.Background(), "intruder", 1, "hi", nil)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeAuthorizationDenied {
		t.Fatalf("expected authorization error, got %#v", err)
	}
}

func TestMessageServiceDeleteForeignMessage(t *testing.T) {
	convRepo := noopConvRepo()
	convRepo.getMessageFn = func(context.Context, uint) (*models.Message, error) {
		return &models.Message{ID: 5, SenderID: "amy"}, nil
	}

	svc := NewMessageService(convRepo, noopProfileRepo())
	err := svc.DeleteMessage(context.Background(), "zed", 5)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeAuthorizationDenied {
		t.Fatalf("expected authorization error, got %#v", err)
	}
}

func TestMessageServiceConversationListOrder(t *testing.T) {
	older := int64(1000)
	newer := int64(2000)
	convRepo := noopConvRepo()
	convRepo.listForUserFn = func(context.Context, string) ([]models.Conversation, error) {
		return []models.Conversation{
			{ID: 1, Participant1ID: "me", Participant2ID: "amy", CreatedAt: 500, LastMessageAt: &older},
			{ID: 2, Participant1ID: "me", Participant2ID: "zed", CreatedAt: 500, LastMessageAt: &newer},
			{ID: 3, Participant1ID: "bob", Participant2ID: "me", CreatedAt: 1500},
		}, nil
	}
	convRepo.countUnreadFn = func(_ context.Context, conversationID uint, _ string) (int64, error) {
		if conversationID == 2 {
			return 3, nil
		}
		return 0, nil
	}

	profileRepo := noopProfileRepo()
	profileRepo.summariesFn = func(_ context.Context, ids []string) (map[string]models.ProfileSummary, error) {
		out := make(map[string]models.ProfileSummary, len(ids))
		for _, id := range ids {
			out[id] = models.ProfileSummary{UserID: id, Username: id}
		}
		return out, nil
	}

	svc := NewMessageService(convRepo, profileRepo)
	summaries, err := svc.GetMyConversations(context.Background(), "me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	// Newest activity first; conversation 3 has no messages so its
	// creation time counts.
	if summaries[0].ID != 2 || summaries[1].ID != 3 || summaries[2].ID != 1 {
		t.Fatalf("unexpected order: %d, %d, %d", summaries[0].ID, summaries[1].ID, summaries[2].ID)
	}
	if summaries[0].UnreadCount != 3 {
		t.Fatalf("expected unread count 3, got %d", summaries[0].UnreadCount)
	}
	if summaries[1].OtherUser == nil || summaries[1].OtherUser.UserID != "bob" {
		t.Fatalf("expected other participant bob, got %#v", summaries[1].OtherUser)
	}
}
