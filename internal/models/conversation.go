package models

// Conversation is a 1:1 message thread. Participant1ID/Participant2ID hold the
// canonical pair: the lexicographically smaller user ID first, so there is at
// most one conversation per unordered pair regardless of who initiates.
type Conversation struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Participant1ID string `gorm:"not null;index;uniqueIndex:idx_conversations_pair,priority:1" json:"participant1Id"`
	Participant2ID string `gorm:"not null;index;uniqueIndex:idx_conversations_pair,priority:2" json:"participant2Id"`
	LastMessageAt  *int64 `gorm:"index" json:"lastMessageAt,omitempty"`
	CreatedAt      int64  `gorm:"autoCreateTime:milli" json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Conversation) TableName() string {
	return "conversations"
}

// CanonicalPair returns the two user IDs in canonical sort order.
func CanonicalPair(a, b string) (string, string) {
	if a <= b {
		return a, b
	}
	return b, a
}

// HasParticipant reports whether the user is one of the two participants.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.Participant1ID == userID || c.Participant2ID == userID
}

// OtherParticipant returns the participant that is not the given user.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.Participant1ID == userID {
		return c.Participant2ID
	}
	return c.Participant1ID
}

// Message is a single direct message within a conversation.
type Message struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	ConversationID uint     `gorm:"not null;index;index:idx_messages_conv_created,priority:1" json:"conversationId"`
	SenderID       string   `gorm:"index;not null" json:"senderId"`
	Content        string   `gorm:"type:text;not null" json:"content"`
	Images         []string `gorm:"serializer:json" json:"images,omitempty"`
	IsRead         bool     `gorm:"default:false" json:"isRead"`
	IsDeleted      bool     `gorm:"default:false" json:"isDeleted,omitempty"`
	CreatedAt      int64    `gorm:"autoCreateTime:milli;index:idx_messages_conv_created,priority:2" json:"createdAt"`
	UpdatedAt      int64    `gorm:"autoUpdateTime:milli" json:"updatedAt,omitempty"`

	// Sender profile, attached at query time.
	Sender *ProfileSummary `gorm:"-" json:"sender,omitempty"`
}

// TableName specifies the table name for GORM.
func (Message) TableName() string {
	return "messages"
}

// MessagePreview is the compact last-message shape embedded in conversation
// and group summaries.
type MessagePreview struct {
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
	SenderID  string `json:"senderId"`
}

// ConversationSummary is one row of the caller's conversation list.
type ConversationSummary struct {
	Conversation
	OtherUser   *ProfileSummary `json:"otherUser"`
	LastMessage *MessagePreview `json:"lastMessage"`
	UnreadCount int64           `json:"unreadCount"`
}

// ConversationInfo is the header payload for an open conversation view.
type ConversationInfo struct {
	ConversationID uint           `json:"conversationId"`
	OtherUser      ProfileSummary `json:"otherUser"`
}
