package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/mlmadmin/internal/models"
)

func runStoreSuite(t *testing.T, s Store) {
	ctx := context.Background()
	admin := "admin-" + uuid.NewString()

	t.Run("sessions", func(t *testing.T) {
		now := time.Now()
		sess := &models.AdminSession{AdminID: admin, Username: "root", ExpiresAt: now.Add(time.Hour)}
		if err := s.CreateSession(ctx, sess); err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
		if sess.ID == uuid.Nil {
			t.Fatal("session id not assigned")
		}

		got, err := s.GetSession(ctx, sess.ID)
		if err != nil {
			t.Fatalf("GetSession: %v", err)
		}
		if !got.Active(now) {
			t.Fatal("new session should be active")
		}

		if err := s.RevokeSession(ctx, sess.ID, now); err != nil {
			t.Fatalf("RevokeSession: %v", err)
		}
		got, _ = s.GetSession(ctx, sess.ID)
		if got.Active(now) {
			t.Fatal("revoked session should be inactive")
		}

		if _, err := s.GetSession(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
			t.Fatalf("missing session: %v", err)
		}
		if err := s.RevokeSession(ctx, uuid.New(), now); !errors.Is(err, ErrNotFound) {
			t.Fatalf("revoke missing session: %v", err)
		}

		live := &models.AdminSession{AdminID: admin, ExpiresAt: now.Add(time.Hour)}
		expired := &models.AdminSession{AdminID: admin, ExpiresAt: now.Add(-time.Hour)}
		s.CreateSession(ctx, live)
		s.CreateSession(ctx, expired)

		removed, err := s.PruneSessions(ctx, now)
		if err != nil {
			t.Fatalf("PruneSessions: %v", err)
		}
		if removed < 2 {
			t.Fatalf("removed = %d, want at least 2", removed)
		}
		if _, err := s.GetSession(ctx, live.ID); err != nil {
			t.Fatalf("live session pruned: %v", err)
		}
	})

	t.Run("notifications", func(t *testing.T) {
		for _, msg := range []string{"first", "second", "third"} {
			if err := s.AddNotification(ctx, &models.Notification{AdminID: admin, Kind: "payout", Message: msg}); err != nil {
				t.Fatalf("AddNotification: %v", err)
			}
			time.Sleep(2 * time.Millisecond)
		}
		s.AddNotification(ctx, &models.Notification{AdminID: "someone-else", Message: "other"})

		list, err := s.ListNotifications(ctx, admin, 0)
		if err != nil {
			t.Fatalf("ListNotifications: %v", err)
		}
		if len(list) != 3 || list[0].Message != "third" {
			t.Fatalf("list = %+v", list)
		}
		if limited, _ := s.ListNotifications(ctx, admin, 2); len(limited) != 2 {
			t.Fatalf("limited list has %d entries", len(limited))
		}

		if n, _ := s.UnreadCount(ctx, admin); n != 3 {
			t.Fatalf("unread = %d", n)
		}
		if err := s.MarkAllRead(ctx, admin); err != nil {
			t.Fatalf("MarkAllRead: %v", err)
		}
		if n, _ := s.UnreadCount(ctx, admin); n != 0 {
			t.Fatalf("unread after mark = %d", n)
		}

		if err := s.DeleteNotification(ctx, "someone-else", list[0].ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("cross-admin delete: %v", err)
		}
		if err := s.DeleteNotification(ctx, admin, list[0].ID); err != nil {
			t.Fatalf("DeleteNotification: %v", err)
		}

		removed, err := s.PruneNotifications(ctx, time.Now().Add(time.Minute))
		if err != nil {
			t.Fatalf("PruneNotifications: %v", err)
		}
		if removed != 2 {
			t.Fatalf("pruned %d, want 2", removed)
		}

		if err := s.ClearNotifications(ctx, "someone-else"); err != nil {
			t.Fatalf("ClearNotifications: %v", err)
		}
		if left, _ := s.ListNotifications(ctx, "someone-else", 0); len(left) != 0 {
			t.Fatalf("notifications left after clear: %d", len(left))
		}
	})

	t.Run("preferences", func(t *testing.T) {
		pref, err := s.GetPreference(ctx, admin)
		if err != nil {
			t.Fatalf("GetPreference: %v", err)
		}
		if pref.Theme != models.ThemeLight {
			t.Fatalf("default theme = %q", pref.Theme)
		}

		if _, err := s.SetTheme(ctx, admin, "neon"); err == nil {
			t.Fatal("unsupported theme accepted")
		}
		for _, theme := range []string{models.ThemeDark, models.ThemeLight, models.ThemeDark} {
			pref, err = s.SetTheme(ctx, admin, theme)
			if err != nil {
				t.Fatalf("SetTheme(%s): %v", theme, err)
			}
		}
		if pref.Theme != models.ThemeDark {
			t.Fatalf("theme = %q", pref.Theme)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemory())
}

func TestGormStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true to run Postgres integration tests")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&models.AdminSession{}, &models.Notification{}, &models.Preference{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM notifications WHERE admin_id = ?", "someone-else")
	})

	runStoreSuite(t, NewGorm(db))
}
