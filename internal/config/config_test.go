package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("BACKEND_BASE_URL", "http://backend.local:3000/")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("DEFAULT_PAGE_SIZE", "not-a-number")

	cfg := Load()

	if cfg.AppPort != "9090" {
		t.Fatalf("AppPort = %q, want 9090", cfg.AppPort)
	}
	if cfg.BackendBaseURL != "http://backend.local:3000" {
		t.Fatalf("BackendBaseURL = %q, trailing slash not trimmed", cfg.BackendBaseURL)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("SessionTTL = %v, want 2h", cfg.SessionTTL)
	}
	if cfg.DefaultPageSize != 10 {
		t.Fatalf("DefaultPageSize = %d, want fallback 10", cfg.DefaultPageSize)
	}
	if cfg.UploadMaxFileSize != 5242880 {
		t.Fatalf("UploadMaxFileSize = %d", cfg.UploadMaxFileSize)
	}
	if len(cfg.UploadAllowed) != 4 {
		t.Fatalf("UploadAllowed = %v", cfg.UploadAllowed)
	}
}
