package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/middleware"
	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/store"
	"github.com/example/mlmadmin/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	backend  *services.Backend
	sessions store.Sessions
	cfg      *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(backend *services.Backend, sessions store.Sessions, cfg *config.Config) *AuthHandler {
	return &AuthHandler{backend: backend, sessions: sessions, cfg: cfg}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// loginResponse is the backend login payload; the admin block is optional.
type loginResponse struct {
	Token string `json:"token"`
	Data  struct {
		Token string `json:"token"`
	} `json:"data"`
	Admin struct {
		ID       models.FlexID `json:"id"`
		Username string        `json:"username"`
	} `json:"admin"`
}

func (r loginResponse) token() string {
	if r.Token != "" {
		return r.Token
	}
	return r.Data.Token
}

// Login exchanges admin credentials for a backend token and opens a session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "username and password are required")
	}

	resp, err := h.backend.Send(c.UserContext(), "", http.MethodPost, services.PathAdminLogin, req)
	if err != nil {
		var be *services.BackendError
		if errors.As(err, &be) && (be.Status == http.StatusUnauthorized || be.Status == http.StatusBadRequest) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}

	var payload loginResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil || payload.token() == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	adminID := payload.Admin.ID.String()
	if adminID == "" {
		adminID = req.Username
	}

	sess := &models.AdminSession{
		AdminID:   adminID,
		Username:  req.Username,
		ExpiresAt: time.Now().Add(h.cfg.SessionTTL),
	}
	if err := h.sessions.CreateSession(c.UserContext(), sess); err != nil {
		return err
	}

	signed, err := utils.GenerateSessionToken(h.cfg.SessionSecret, sess.ID, adminID, req.Username, payload.token(), h.cfg.SessionTTL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	log.Printf("[Auth] admin %s signed in", req.Username)

	if middleware.WantsHTML(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token":      signed,
			"expires_at": sess.ExpiresAt,
			"admin": fiber.Map{
				"id":       adminID,
				"username": req.Username,
			},
		},
	})
}

// Logout revokes the current session and clears the cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if claims, ok := middleware.GetSession(c); ok {
		if err := h.sessions.RevokeSession(c.UserContext(), claims.SessionUUID(), time.Now()); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		log.Printf("[Auth] admin %s signed out", claims.Username)
	}

	c.ClearCookie(middleware.SessionCookie)

	if middleware.WantsHTML(c) {
		return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"success": true, "message": "logged out"})
}

// Me returns the signed-in admin.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := middleware.GetSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing session")
	}
	return dataResponse(c, fiber.Map{
		"id":         claims.AdminID,
		"username":   claims.Username,
		"expires_at": claims.ExpiresAt.Time,
	})
}

// LoginPage serves the sign-in form.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(loginPage)
}

const loginPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Admin Login</title>
<style>
body{font-family:system-ui,sans-serif;background:#f5f3ff;display:flex;align-items:center;justify-content:center;height:100vh;margin:0}
form{background:#fff;padding:2rem;border-radius:12px;box-shadow:0 4px 24px rgba(0,0,0,.08);width:320px}
h1{color:#6d28d9;font-size:1.4rem;margin:0 0 1.2rem}
label{display:block;font-size:.85rem;color:#475569;margin-bottom:.3rem}
input{width:100%;box-sizing:border-box;padding:.6rem;border:1px solid #cbd5e1;border-radius:8px;margin-bottom:1rem}
button{width:100%;padding:.7rem;border:0;border-radius:8px;background:#7c3aed;color:#fff;font-weight:600;cursor:pointer}
</style>
</head>
<body>
<form method="post" action="/api/auth/login">
<h1>Admin Login</h1>
<label for="username">Username</label>
<input id="username" name="username" placeholder="admin" autocomplete="username" required>
<label for="password">Password</label>
<input id="password" name="password" type="password" autocomplete="current-password" required>
<button type="submit">Sign in</button>
</form>
</body>
</html>
`
