package models

// UserBan is one ban record for a user. Users accumulate historical rows; only
// rows with IsActive=true and an unexpired (or absent) ExpiresAt represent a
// live ban.
type UserBan struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"index;not null" json:"userId"`
	Reason    string `gorm:"not null" json:"reason"`
	BannedBy  string `gorm:"index;not null" json:"bannedBy"`
	BannedAt  int64  `gorm:"autoCreateTime:milli" json:"bannedAt"`
	ExpiresAt *int64 `json:"expiresAt,omitempty"` // nil = permanent
	IsActive  bool   `gorm:"index;default:true" json:"isActive"`
}

// TableName specifies the table name for GORM.
func (UserBan) TableName() string {
	return "user_bans"
}

// BanStatus is the result of a ban lookup.
type BanStatus struct {
	IsBanned  bool   `json:"isBanned"`
	Expired   bool   `json:"expired,omitempty"`
	Reason    string `json:"reason,omitempty"`
	BannedAt  int64  `json:"bannedAt,omitempty"`
	ExpiresAt *int64 `json:"expiresAt,omitempty"`
}

// ReportTargetType identifies what kind of entity a report points at.
type ReportTargetType string

const (
	ReportTargetPost    ReportTargetType = "post"
	ReportTargetComment ReportTargetType = "comment"
	ReportTargetMessage ReportTargetType = "message"
	ReportTargetUser    ReportTargetType = "user"
)

// ReportStatus is the review state of a report.
// Transitions: pending -> reviewed | resolved | dismissed; never back to pending.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// Report is a user-submitted violation report.
type Report struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	ReporterID  string           `gorm:"index;not null" json:"reporterId"`
	TargetType  ReportTargetType `gorm:"type:varchar(20);index:idx_reports_target;not null" json:"targetType"`
	TargetID    string           `gorm:"index:idx_reports_target;not null" json:"targetId"`
	Reason      string           `gorm:"not null" json:"reason"`
	Description string           `json:"description,omitempty"`
	Status      ReportStatus     `gorm:"type:varchar(20);index;default:'pending'" json:"status"`
	ReviewedBy  string           `json:"reviewedBy,omitempty"`
	ReviewedAt  *int64           `json:"reviewedAt,omitempty"`
	Resolution  string           `json:"resolution,omitempty"`
	CreatedAt   int64            `gorm:"autoCreateTime:milli;index" json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Report) TableName() string {
	return "reports"
}

// AuditAction enumerates the moderation actions recorded in the audit log.
type AuditAction string

const (
	AuditDeletePost    AuditAction = "delete_post"
	AuditDeleteComment AuditAction = "delete_comment"
	AuditBanUser       AuditAction = "ban_user"
	AuditUnbanUser     AuditAction = "unban_user"
	AuditGrantRole     AuditAction = "grant_role"
	AuditRevokeRole    AuditAction = "revoke_role"
	AuditResolveReport AuditAction = "resolve_report"
)

// AuditLog is an append-only record of a privileged action. Rows are never
// mutated or deleted.
type AuditLog struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	AdminID    string      `gorm:"index;not null" json:"adminId"`
	Action     AuditAction `gorm:"type:varchar(30);index;not null" json:"action"`
	TargetType string      `gorm:"index:idx_audit_target" json:"targetType,omitempty"`
	TargetID   string      `gorm:"index:idx_audit_target" json:"targetId,omitempty"`
	Details    string      `json:"details,omitempty"` // serialized JSON
	CreatedAt  int64       `gorm:"autoCreateTime:milli;index" json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (AuditLog) TableName() string {
	return "audit_logs"
}
