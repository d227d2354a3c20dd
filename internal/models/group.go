package models

// Group is a multi-member chat group. Soft-deleted only; member and message
// rows are not cascaded on delete (reads skip deleted groups).
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	CreatedByID string `gorm:"index;not null" json:"createdById"`
	IsDeleted   bool   `gorm:"default:false" json:"isDeleted,omitempty"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;index" json:"createdAt"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli" json:"updatedAt,omitempty"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}

// GroupRole is a member's role within one group.
type GroupRole string

const (
	// GroupRoleAdmin may add and remove members and delete any message.
	GroupRoleAdmin GroupRole = "admin"
	// GroupRoleMember is the default membership role.
	GroupRoleMember GroupRole = "member"
)

// GroupMember is a membership row. At most one row per (group, user); leaving
// or removal deactivates it and re-adding reactivates it, never duplicating.
// The creator's row is always admin and can never be deactivated while they
// remain creator.
type GroupMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	GroupID  uint      `gorm:"not null;uniqueIndex:idx_group_members_pair,priority:1;index" json:"groupId"`
	UserID   string    `gorm:"not null;uniqueIndex:idx_group_members_pair,priority:2;index" json:"userId"`
	Role     GroupRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt int64     `gorm:"autoCreateTime:milli" json:"joinedAt"`
	IsActive bool      `gorm:"index;default:true" json:"isActive"`
}

// TableName specifies the table name for GORM.
func (GroupMember) TableName() string {
	return "group_members"
}

// GroupMessage is a message within a group.
type GroupMessage struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	GroupID   uint     `gorm:"not null;index;index:idx_group_messages_group_created,priority:1" json:"groupId"`
	SenderID  string   `gorm:"index;not null" json:"senderId"`
	Content   string   `gorm:"type:text;not null" json:"content"`
	Images    []string `gorm:"serializer:json" json:"images,omitempty"`
	IsDeleted bool     `gorm:"default:false" json:"isDeleted,omitempty"`
	CreatedAt int64    `gorm:"autoCreateTime:milli;index:idx_group_messages_group_created,priority:2" json:"createdAt"`
	UpdatedAt int64    `gorm:"autoUpdateTime:milli" json:"updatedAt,omitempty"`

	Sender *ProfileSummary `gorm:"-" json:"sender,omitempty"`
}

// TableName specifies the table name for GORM.
func (GroupMessage) TableName() string {
	return "group_messages"
}

// SystemGroupType distinguishes platform-managed groups.
type SystemGroupType string

const (
	// SystemGroupDefault marks the platform-wide auto-join group.
	SystemGroupDefault SystemGroupType = "default"
	// SystemGroupAnnouncements marks the announcements group.
	SystemGroupAnnouncements SystemGroupType = "announcements"
)

// SystemGroup marks a Group as platform-managed. At most one active record
// per type.
type SystemGroup struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	GroupID   uint            `gorm:"index;not null" json:"groupId"`
	Type      SystemGroupType `gorm:"type:varchar(20);index;not null" json:"type"`
	IsActive  bool            `gorm:"default:true" json:"isActive"`
	CreatedAt int64           `gorm:"autoCreateTime:milli" json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (SystemGroup) TableName() string {
	return "system_groups"
}

// GroupSummary is one row of the caller's group list.
type GroupSummary struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Avatar      string          `json:"avatar,omitempty"`
	CreatedByID string          `json:"createdById"`
	CreatedAt   int64           `json:"createdAt"`
	LastMessage *MessagePreview `json:"lastMessage"`
	MemberCount int64           `json:"memberCount"`
	UnreadCount int64           `json:"unreadCount"`
	UserRole    GroupRole       `json:"userRole"`
}

// GroupMemberInfo is one member row in the group-info payload.
type GroupMemberInfo struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar,omitempty"`
	Role     GroupRole `json:"role"`
	JoinedAt int64     `json:"joinedAt"`
}

// GroupInfo is the full group header with its active members.
type GroupInfo struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Avatar      string            `json:"avatar,omitempty"`
	CreatedByID string            `json:"createdById"`
	CreatedAt   int64             `json:"createdAt"`
	Members     []GroupMemberInfo `json:"members"`
	UserRole    GroupRole         `json:"userRole"`
}
