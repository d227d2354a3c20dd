package models

// Post is a user post. Moderator removals soft-delete; an owner delete removes
// the row after cascading out likes and comments.
type Post struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        string `gorm:"index;index:idx_posts_user_created,priority:1;not null" json:"userId"`
	Content       string `gorm:"type:text;not null" json:"content"`
	Image         string `json:"image,omitempty"`
	ImagePublicID string `json:"imagePublicId,omitempty"`
	IsDeleted     bool   `gorm:"default:false" json:"isDeleted,omitempty"`
	CreatedAt     int64  `gorm:"autoCreateTime:milli;index;index:idx_posts_user_created,priority:2" json:"createdAt"`
	UpdatedAt     int64  `gorm:"autoUpdateTime:milli" json:"updatedAt,omitempty"`

	// Computed at query time, never persisted.
	LikeCount            int  `gorm:"-" json:"likeCount"`
	CommentCount         int  `gorm:"-" json:"commentCount"`
	IsLikedByCurrentUser bool `gorm:"-" json:"isLikedByCurrentUser"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// Comment is a comment on a post. Soft delete only.
type Comment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"index;not null" json:"userId"`
	PostID    uint   `gorm:"index;index:idx_comments_post_created,priority:1;not null" json:"postId"`
	Content   string `gorm:"type:text;not null" json:"content"`
	IsDeleted bool   `gorm:"default:false" json:"isDeleted,omitempty"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;index:idx_comments_post_created,priority:2" json:"createdAt"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli" json:"updatedAt,omitempty"`

	LikeCount            int  `gorm:"-" json:"likeCount"`
	IsLikedByCurrentUser bool `gorm:"-" json:"isLikedByCurrentUser"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}

// Like marks that a user liked a post or a comment; exactly one of PostID and
// CommentID is set. The composite unique indexes are the authoritative guard
// against duplicate likes (the service-level pre-check only shapes the error).
type Like struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"not null;uniqueIndex:idx_likes_post_user;uniqueIndex:idx_likes_comment_user" json:"userId"`
	PostID    *uint  `gorm:"index;uniqueIndex:idx_likes_post_user" json:"postId,omitempty"`
	CommentID *uint  `gorm:"index;uniqueIndex:idx_likes_comment_user" json:"commentId,omitempty"`
	CreatedAt int64  `gorm:"autoCreateTime:milli" json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Like) TableName() string {
	return "likes"
}

// Follow is a directed follower edge. Unique per (follower, following) pair.
type Follow struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	FollowerID  string `gorm:"not null;uniqueIndex:idx_follows_pair;index" json:"followerId"`
	FollowingID string `gorm:"not null;uniqueIndex:idx_follows_pair;index" json:"followingId"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli" json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
