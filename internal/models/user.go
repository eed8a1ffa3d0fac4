package models

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const avatarFallbackURL = "https://api.dicebear.com/7.x/personas/svg?seed="

// AvatarFor returns avatar, or the generated avatar seeded by username.
func AvatarFor(avatar, username string) string {
	if avatar != "" {
		return avatar
	}
	return avatarFallbackURL + url.QueryEscape(username)
}

// User 代表直连模式下数据库中的用户。
type User struct {
	BaseModel
	Username     string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"` // 不暴露密码哈希
	AvatarURL    string     `gorm:"type:varchar(255)" json:"avatarUrl,omitempty"`
	LastSeenAt   *time.Time `json:"lastSeenAt,omitempty"`
}

// TableName 指定 User 模型的表名。
func (User) TableName() string {
	return "users"
}

// Profile converts the stored user into its public profile.
func (u *User) Profile() Profile {
	return Profile{
		ID:          strconv.FormatUint(uint64(u.ID), 10),
		DisplayName: u.Username,
		AvatarURL:   AvatarFor(u.AvatarURL, u.Username),
	}
}

// Profile holds the public information about any user.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// MatchesQuery reports whether the display name contains query, ignoring case.
func (p Profile) MatchesQuery(query string) bool {
	return strings.Contains(strings.ToLower(p.DisplayName), strings.ToLower(strings.TrimSpace(query)))
}

// Identity is the authenticated user of a session. It never changes for the
// lifetime of the session.
type Identity struct {
	Profile
	Token string `json:"token"`
}

// IsZero reports whether the identity carries no user.
func (i Identity) IsZero() bool {
	return i.ID == ""
}
