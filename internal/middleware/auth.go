package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/store"
	"github.com/example/mlmadmin/internal/utils"
)

// SessionCookie is the name of the cookie carrying the session JWT.
const SessionCookie = "admin_session"

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

const sessionContextKey = "currentSession"

// AuthMiddleware validates the admin session and loads its claims into context.
// Browser navigations are redirected to the login page; API calls get 401.
func AuthMiddleware(secret string, sessions store.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == LoginPath {
			return c.Next()
		}

		tokenString := sessionToken(c)
		if tokenString == "" {
			return deny(c, "missing session")
		}

		claims, err := utils.ParseSessionToken(secret, tokenString)
		if err != nil {
			return deny(c, "invalid session")
		}

		sess, err := sessions.GetSession(c.UserContext(), claims.SessionUUID())
		if err != nil {
			if err != store.ErrNotFound {
				log.Printf("[Auth] session lookup failed: %v", err)
			}
			return deny(c, "invalid session")
		}
		if !sess.Active(time.Now()) {
			return deny(c, "session expired")
		}

		c.Locals(sessionContextKey, claims)
		return c.Next()
	}
}

// GetSession extracts the authenticated session claims from context.
func GetSession(c *fiber.Ctx) (*utils.SessionClaims, bool) {
	claims, ok := c.Locals(sessionContextKey).(*utils.SessionClaims)
	return claims, ok && claims != nil
}

// BackendToken returns the backend bearer token of the current session.
func BackendToken(c *fiber.Ctx) string {
	if claims, ok := GetSession(c); ok {
		return claims.BackendToken
	}
	return ""
}

func sessionToken(c *fiber.Ctx) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies(SessionCookie)
}

func deny(c *fiber.Ctx, msg string) error {
	if WantsHTML(c) {
		c.ClearCookie(SessionCookie)
		return c.Redirect(LoginPath, fiber.StatusFound)
	}
	return fiber.NewError(fiber.StatusUnauthorized, msg)
}

// WantsHTML reports whether the request is a browser page navigation.
func WantsHTML(c *fiber.Ctx) bool {
	accept := c.Get(fiber.HeaderAccept)
	return strings.Contains(accept, fiber.MIMETextHTML)
}
