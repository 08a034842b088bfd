package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/mlmadmin/internal/models"
)

// Memory holds all console state in memory.
type Memory struct {
	mu sync.RWMutex

	sessions      map[uuid.UUID]models.AdminSession
	notifications map[uuid.UUID]models.Notification
	preferences   map[string]models.Preference

	now func() time.Time
}

// NewMemory creates a Memory store with empty state.
func NewMemory() *Memory {
	return &Memory{
		sessions:      make(map[uuid.UUID]models.AdminSession),
		notifications: make(map[uuid.UUID]models.Notification),
		preferences:   make(map[string]models.Preference),
		now:           time.Now,
	}
}

func (m *Memory) stamp(b *models.BaseModel) {
	b.EnsureID()
	now := m.now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func (m *Memory) CreateSession(_ context.Context, s *models.AdminSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stamp(&s.BaseModel)
	m.sessions[s.ID] = *s
	return nil
}

func (m *Memory) GetSession(_ context.Context, id uuid.UUID) (*models.AdminSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *Memory) RevokeSession(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if s.RevokedAt == nil {
		s.RevokedAt = &at
		s.UpdatedAt = at
		m.sessions[id] = s
	}
	return nil
}

func (m *Memory) PruneSessions(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, s := range m.sessions {
		if s.RevokedAt != nil || s.ExpiresAt.Before(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (m *Memory) AddNotification(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stamp(&n.BaseModel)
	m.notifications[n.ID] = *n
	return nil
}

func (m *Memory) ListNotifications(_ context.Context, adminID string, limit int) ([]models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Notification{}
	for _, n := range m.notifications {
		if n.AdminID == adminID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) UnreadCount(_ context.Context, adminID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, n := range m.notifications {
		if n.AdminID == adminID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *Memory) MarkAllRead(_ context.Context, adminID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range m.notifications {
		if n.AdminID == adminID && !n.Read {
			n.Read = true
			n.UpdatedAt = m.now()
			m.notifications[id] = n
		}
	}
	return nil
}

func (m *Memory) DeleteNotification(_ context.Context, adminID string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.AdminID != adminID {
		return ErrNotFound
	}
	delete(m.notifications, id)
	return nil
}

func (m *Memory) ClearNotifications(_ context.Context, adminID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range m.notifications {
		if n.AdminID == adminID {
			delete(m.notifications, id)
		}
	}
	return nil
}

func (m *Memory) PruneNotifications(_ context.Context, readBefore time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, n := range m.notifications {
		if n.Read && n.CreatedAt.Before(readBefore) {
			delete(m.notifications, id)
			removed++
		}
	}
	return removed, nil
}

func (m *Memory) GetPreference(_ context.Context, adminID string) (*models.Preference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.preferences[adminID]; ok {
		return &p, nil
	}
	return DefaultPreference(adminID), nil
}

func (m *Memory) SetTheme(_ context.Context, adminID, theme string) (*models.Preference, error) {
	if !ValidTheme(theme) {
		return nil, fmt.Errorf("unsupported theme %q", theme)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.preferences[adminID]
	if !ok {
		p = models.Preference{AdminID: adminID}
	}
	p.Theme = theme
	m.stamp(&p.BaseModel)
	m.preferences[adminID] = p
	return &p, nil
}
