package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/store"
)

// PreferenceHandler serves the theme toggle.
type PreferenceHandler struct {
	prefs store.Preferences
}

// NewPreferenceHandler constructs PreferenceHandler.
func NewPreferenceHandler(prefs store.Preferences) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

// Get returns the admin's preference, light by default.
func (h *PreferenceHandler) Get(c *fiber.Ctx) error {
	adminID, err := currentAdmin(c)
	if err != nil {
		return err
	}
	p, err := h.prefs.GetPreference(c.UserContext(), adminID)
	if err != nil {
		return err
	}
	return dataResponse(c, p)
}

type themeRequest struct {
	Theme string `json:"theme"`
}

// SetTheme stores an explicit theme.
func (h *PreferenceHandler) SetTheme(c *fiber.Ctx) error {
	adminID, err := currentAdmin(c)
	if err != nil {
		return err
	}
	var req themeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	theme := strings.ToLower(strings.TrimSpace(req.Theme))
	if !store.ValidTheme(theme) {
		return fiber.NewError(fiber.StatusBadRequest, "theme must be light or dark")
	}
	p, err := h.prefs.SetTheme(c.UserContext(), adminID, theme)
	if err != nil {
		return err
	}
	return dataResponse(c, p)
}

// Toggle flips between light and dark.
func (h *PreferenceHandler) Toggle(c *fiber.Ctx) error {
	adminID, err := currentAdmin(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	current, err := h.prefs.GetPreference(ctx, adminID)
	if err != nil {
		return err
	}
	next := models.ThemeDark
	if current.Theme == models.ThemeDark {
		next = models.ThemeLight
	}
	p, err := h.prefs.SetTheme(ctx, adminID, next)
	if err != nil {
		return err
	}
	return dataResponse(c, p)
}
