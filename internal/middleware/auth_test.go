package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/store"
	"github.com/example/mlmadmin/internal/utils"
)

const testSecret = "test-secret"

func newApp(sessions store.Sessions) *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(testSecret, sessions))
	app.Get("/login", func(c *fiber.Ctx) error { return c.SendString("login") })
	app.Get("/dashboard", func(c *fiber.Ctx) error {
		claims, ok := GetSession(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(claims.Username + ":" + BackendToken(c))
	})
	return app
}

func issue(t *testing.T, mem *store.Memory, ttl time.Duration) (string, *models.AdminSession) {
	t.Helper()
	sess := &models.AdminSession{AdminID: "1", Username: "root", ExpiresAt: time.Now().Add(ttl)}
	if err := mem.CreateSession(context.Background(), sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	token, err := utils.GenerateSessionToken(testSecret, sess.ID, "1", "root", "backend-token", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	return token, sess
}

func TestAuthRedirectsBrowserWithoutSession(t *testing.T) {
	app := newApp(store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != LoginPath {
		t.Fatalf("got %d location %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestAuthRejectsAPIWithoutSession(t *testing.T) {
	app := newApp(store.NewMemory())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestAuthLoginPageIsOpen(t *testing.T) {
	app := newApp(store.NewMemory())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestAuthAcceptsCookieAndBearer(t *testing.T) {
	mem := store.NewMemory()
	app := newApp(mem)
	token, _ := issue(t, mem, time.Hour)

	cookieReq := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	cookieReq.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	bearerReq := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	bearerReq.Header.Set("Authorization", "Bearer "+token)

	for name, req := range map[string]*http.Request{"cookie": cookieReq, "bearer": bearerReq} {
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("%s: app.Test: %v", name, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s: status = %d", name, resp.StatusCode)
		}
	}
}

func TestAuthRejectsRevokedAndExpiredSessions(t *testing.T) {
	mem := store.NewMemory()
	app := newApp(mem)

	revokedToken, revoked := issue(t, mem, time.Hour)
	mem.RevokeSession(context.Background(), revoked.ID, time.Now())
	expiredToken, _ := issue(t, mem, -time.Minute)

	for name, token := range map[string]string{"revoked": revokedToken, "expired": expiredToken, "garbage": "not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("%s: app.Test: %v", name, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s: status = %d", name, resp.StatusCode)
		}
	}
}
