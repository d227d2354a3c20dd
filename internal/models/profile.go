// Package models contains data structures for the application's domain models.
//
// All timestamps are stored as integer milliseconds since epoch to match the
// wire contract consumed by existing clients (GORM's autoCreateTime:milli /
// autoUpdateTime:milli fill them in).
package models

// Profile is the social profile for a user identity. One profile per user ID;
// usernames are stored normalized (lowercase) and unique.
type Profile struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	UserID             string  `gorm:"uniqueIndex;not null" json:"userId"`
	Username           string  `gorm:"uniqueIndex;not null" json:"username"`
	Avatar             string  `json:"avatar,omitempty"`
	Bio                string  `json:"bio,omitempty"`
	Website            string  `json:"website,omitempty"`
	Location           string  `json:"location,omitempty"`
	Birthday           *int64  `json:"birthday,omitempty"`
	IsPrivate          bool    `gorm:"default:false" json:"isPrivate"`
	IsVerified         bool    `gorm:"default:false" json:"isVerified"`
	LastUsernameChange *int64  `json:"lastUsernameChange,omitempty"`
	CreatedAt          int64   `gorm:"autoCreateTime:milli" json:"createdAt"`
	UpdatedAt          int64   `gorm:"autoUpdateTime:milli" json:"updatedAt,omitempty"`
}

// TableName specifies the table name for GORM.
func (Profile) TableName() string {
	return "profiles"
}

// ProfileSummary is the compact profile shape embedded in conversation and
// message payloads.
type ProfileSummary struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// Summary returns the compact embeddable form of the profile.
func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{
		UserID:   p.UserID,
		Username: p.Username,
		Avatar:   p.Avatar,
	}
}
