// Package store persists the console's own state: admin sessions,
// notifications and display preferences.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/mlmadmin/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Sessions tracks issued admin sessions.
type Sessions interface {
	CreateSession(ctx context.Context, s *models.AdminSession) error
	GetSession(ctx context.Context, id uuid.UUID) (*models.AdminSession, error)
	RevokeSession(ctx context.Context, id uuid.UUID, at time.Time) error
	PruneSessions(ctx context.Context, now time.Time) (int64, error)
}

// Notifications backs the notification bell.
type Notifications interface {
	AddNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, adminID string, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, adminID string) (int64, error)
	MarkAllRead(ctx context.Context, adminID string) error
	DeleteNotification(ctx context.Context, adminID string, id uuid.UUID) error
	ClearNotifications(ctx context.Context, adminID string) error
	PruneNotifications(ctx context.Context, readBefore time.Time) (int64, error)
}

// Preferences stores per-admin settings such as the theme.
type Preferences interface {
	GetPreference(ctx context.Context, adminID string) (*models.Preference, error)
	SetTheme(ctx context.Context, adminID, theme string) (*models.Preference, error)
}

// Store is the full local persistence surface.
type Store interface {
	Sessions
	Notifications
	Preferences
}

// DefaultPreference is returned for admins without a stored preference.
func DefaultPreference(adminID string) *models.Preference {
	return &models.Preference{AdminID: adminID, Theme: models.ThemeLight}
}

// ValidTheme reports whether theme is supported.
func ValidTheme(theme string) bool {
	return theme == models.ThemeLight || theme == models.ThemeDark
}
