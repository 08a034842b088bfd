package models

import (
	"time"
)

// AdminSession records a console login so it can be revoked on logout.
type AdminSession struct {
	BaseModel
	AdminID   string     `gorm:"index" json:"admin_id"`
	Username  string     `json:"username"`
	ExpiresAt time.Time  `gorm:"index" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at"`
}

// Active reports whether the session may still be used at the given time.
func (s AdminSession) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// Notification is an entry of an admin's notification bell.
type Notification struct {
	BaseModel
	AdminID string `gorm:"index" json:"admin_id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Read    bool   `gorm:"index" json:"read"`
}

// Themes supported by the console.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preference stores per-admin display settings.
type Preference struct {
	BaseModel
	AdminID string `gorm:"uniqueIndex" json:"admin_id"`
	Theme   string `json:"theme"`
}
