// Package jobs runs background maintenance of the console's local state.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/mlmadmin/internal/store"
)

// Housekeeping prunes expired sessions and old read notifications.
type Housekeeping struct {
	Sessions      store.Sessions
	Notifications store.Notifications
	Retention     time.Duration
	Interval      time.Duration

	now func() time.Time
}

// NewHousekeeping creates a housekeeping job over the given store.
func NewHousekeeping(s store.Store, retention time.Duration) *Housekeeping {
	return &Housekeeping{
		Sessions:      s,
		Notifications: s,
		Retention:     retention,
		Interval:      time.Hour,
		now:           time.Now,
	}
}

// Start schedules the job and runs it once immediately.
func (h *Housekeeping) Start() (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.Local)
	scheduler.SingletonModeAll()

	_, err := scheduler.Every(h.Interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := h.Run(ctx); err != nil {
			log.Printf("[Jobs] housekeeping failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule housekeeping: %w", err)
	}

	scheduler.StartAsync()
	log.Printf("[Jobs] housekeeping scheduled every %s", h.Interval)
	return scheduler, nil
}

// Run performs a single pruning pass.
func (h *Housekeeping) Run(ctx context.Context) error {
	now := h.now()

	sessions, err := h.Sessions.PruneSessions(ctx, now)
	if err != nil {
		return fmt.Errorf("prune sessions: %w", err)
	}

	var notifications int64
	if h.Retention > 0 {
		notifications, err = h.Notifications.PruneNotifications(ctx, now.Add(-h.Retention))
		if err != nil {
			return fmt.Errorf("prune notifications: %w", err)
		}
	}

	if sessions > 0 || notifications > 0 {
		log.Printf("[Jobs] pruned %d sessions and %d notifications", sessions, notifications)
	}
	return nil
}
