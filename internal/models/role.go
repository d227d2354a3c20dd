package models

// Role is a platform-wide privilege level.
type Role string

const (
	// RoleAdmin may grant roles, view audit logs, and do everything a moderator can.
	RoleAdmin Role = "admin"
	// RoleModerator may ban users, delete content, and review reports.
	RoleModerator Role = "moderator"
	// RoleUser is the implicit default when no role record exists.
	RoleUser Role = "user"
)

// UserRole is the stored role assignment for a user. At most one row per user;
// absence implies RoleUser.
type UserRole struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"uniqueIndex;not null" json:"userId"`
	Role      Role   `gorm:"type:varchar(20);not null" json:"role"`
	GrantedBy string `json:"grantedBy,omitempty"`
	GrantedAt int64  `gorm:"autoCreateTime:milli" json:"grantedAt"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli" json:"updatedAt,omitempty"`
}

// TableName specifies the table name for GORM.
func (UserRole) TableName() string {
	return "user_roles"
}
