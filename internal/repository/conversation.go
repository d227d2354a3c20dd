package repository

import (
	"context"
	"errors"
	"time"

	"nexum/internal/models"

	"gorm.io/gorm"
)

// ConversationRepository defines persistence operations for 1:1 conversations
// and their messages.
type ConversationRepository interface {
	GetByPair(ctx context.Context, participant1ID, participant2ID string) (*models.Conversation, error)
	Create(ctx context.Context, conversation *models.Conversation) error
	GetByID(ctx context.Context, id uint) (*models.Conversation, error)
	ListForUser(ctx context.Context, userID string) ([]models.Conversation, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, conversationID uint) ([]models.Message, error)
	LatestMessage(ctx context.Context, conversationID uint) (*models.Message, error)
	CountUnread(ctx context.Context, conversationID uint, readerID string) (int64, error)
	MarkAllRead(ctx context.Context, conversationID uint, readerID string) error
	GetMessage(ctx context.Context, id uint) (*models.Message, error)
	SoftDeleteMessage(ctx context.Context, id uint) error
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository returns a new ConversationRepository implementation.
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetByPair(ctx context.Context, participant1ID, participant2ID string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.WithContext(ctx).
		Where("participant1_id = ? AND participant2_id = ?", participant1ID, participant2ID).
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &conversation, nil
}

func (r *conversationRepository) Create(ctx context.Context, conversation *models.Conversation) error {
	if err := r.db.WithContext(ctx).Create(conversation).Error; err != nil {
		if isUniqueViolation(err) {
			// A concurrent get-or-create won the race; the unique pair index
			// guarantees at most one conversation per unordered pair.
			existing, lookupErr := r.GetByPair(ctx, conversation.Participant1ID, conversation.Participant2ID)
			if lookupErr == nil && existing != nil {
				*conversation = *existing
				return nil
			}
			return models.NewConflictError("Conversation already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &conversation, nil
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := r.db.WithContext(ctx).
		Where("participant1_id = ? OR participant2_id = ?", userID, userID).
		Find(&conversations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return conversations, nil
}

// CreateMessage inserts the message and bumps the conversation's
// last_message_at inside one transaction.
func (r *conversationRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		now := time.Now().UnixMilli()
		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("last_message_at", now).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *conversationRepository) ListMessages(ctx context.Context, conversationID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND is_deleted = ?", conversationID, false).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *conversationRepository) LatestMessage(ctx context.Context, conversationID uint) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
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

func (r *conversationRepository) CountUnread(ctx context.Context, conversationID uint, readerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *conversationRepository) MarkAllRead(ctx context.Context, conversationID uint, readerID string) error {
	if err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *conversationRepository) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *conversationRepository) SoftDeleteMessage(ctx context.Context, id uint) error {
	now := time.Now().UnixMilli()
	if err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": now}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
