package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/mlmadmin/internal/models"
)

// Gorm is the Postgres-backed Store.
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps an initialized gorm.DB.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) CreateSession(ctx context.Context, sess *models.AdminSession) error {
	return s.db.WithContext(ctx).Create(sess).Error
}

func (s *Gorm) GetSession(ctx context.Context, id uuid.UUID) (*models.AdminSession, error) {
	var sess models.AdminSession
	if err := s.db.WithContext(ctx).First(&sess, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (s *Gorm) RevokeSession(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := s.db.WithContext(ctx).Model(&models.AdminSession{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := s.GetSession(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// PruneSessions removes expired and revoked sessions.
func (s *Gorm) PruneSessions(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", now).
		Delete(&models.AdminSession{})
	return result.RowsAffected, result.Error
}

func (s *Gorm) AddNotification(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *Gorm) ListNotifications(ctx context.Context, adminID string, limit int) ([]models.Notification, error) {
	var out []models.Notification
	query := s.db.WithContext(ctx).Where("admin_id = ?", adminID).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Gorm) UnreadCount(ctx context.Context, adminID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("admin_id = ? AND read = ?", adminID, false).
		Count(&count).Error
	return count, err
}

func (s *Gorm) MarkAllRead(ctx context.Context, adminID string) error {
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("admin_id = ? AND read = ?", adminID, false).
		Update("read", true).Error
}

func (s *Gorm) DeleteNotification(ctx context.Context, adminID string, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND admin_id = ?", id, adminID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) ClearNotifications(ctx context.Context, adminID string) error {
	return s.db.WithContext(ctx).Where("admin_id = ?", adminID).Delete(&models.Notification{}).Error
}

// PruneNotifications deletes read notifications created before the cutoff.
func (s *Gorm) PruneNotifications(ctx context.Context, readBefore time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("read = ? AND created_at < ?", true, readBefore).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

func (s *Gorm) GetPreference(ctx context.Context, adminID string) (*models.Preference, error) {
	var pref models.Preference
	err := s.db.WithContext(ctx).First(&pref, "admin_id = ?", adminID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultPreference(adminID), nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (s *Gorm) SetTheme(ctx context.Context, adminID, theme string) (*models.Preference, error) {
	if !ValidTheme(theme) {
		return nil, fmt.Errorf("unsupported theme %q", theme)
	}
	pref := models.Preference{AdminID: adminID, Theme: theme}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "admin_id"}},
		DoUpdates: clause.Assignments(map[string]any{"theme": theme, "updated_at": time.Now()}),
	}).Create(&pref).Error
	if err != nil {
		return nil, err
	}
	return s.GetPreference(ctx, adminID)
}
