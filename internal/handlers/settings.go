package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/middleware"
	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/store"
)

// SettingsHandler serves static content, platform settings and admin users.
type SettingsHandler struct {
	base
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(backend *services.Backend, notes store.Notifications, cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{base: newBase(backend, notes, cfg)}
}

// ContentSettings groups the privacy policy, terms and FAQs.
type ContentSettings struct {
	Privacy *models.ContentDocument `json:"privacy"`
	Terms   *models.ContentDocument `json:"terms"`
	FAQs    []models.FAQ            `json:"faqs"`
}

// Content loads the three content parts concurrently. A failed part is
// reported in errors and left empty.
func (h *SettingsHandler) Content(c *fiber.Ctx) error {
	ctx, tok := c.UserContext(), token(c)

	content := ContentSettings{FAQs: []models.FAQ{}}
	var privacyErr, termsErr, faqErr error
	var g errgroup.Group
	g.Go(func() error {
		var doc models.ContentDocument
		if privacyErr = services.FetchObject(ctx, h.backend, tok, services.PathPrivacyActive, nil, &doc); privacyErr == nil {
			content.Privacy = &doc
		}
		return nil
	})
	g.Go(func() error {
		var doc models.ContentDocument
		if termsErr = services.FetchObject(ctx, h.backend, tok, services.PathTermsActive, nil, &doc); termsErr == nil {
			content.Terms = &doc
		}
		return nil
	})
	g.Go(func() error {
		var faqs []models.FAQ
		if faqs, _, faqErr = services.FetchList[models.FAQ](ctx, h.backend, tok, services.PathFAQs, nil, "faqs"); faqErr == nil {
			content.FAQs = faqs
		}
		return nil
	})
	_ = g.Wait()

	errs := fiber.Map{}
	for part, err := range map[string]error{"privacy": privacyErr, "terms": termsErr, "faqs": faqErr} {
		if err != nil {
			errs[part] = errorText(err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    content,
		"errors":  errs,
	})
}

type documentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SavePrivacy publishes a new privacy policy.
func (h *SettingsHandler) SavePrivacy(c *fiber.Ctx) error {
	return h.saveDocument(c, services.PathPrivacy, "Privacy policy")
}

// SaveTerms publishes new terms and conditions.
func (h *SettingsHandler) SaveTerms(c *fiber.Ctx) error {
	return h.saveDocument(c, services.PathTerms, "Terms and conditions")
}

func (h *SettingsHandler) saveDocument(c *fiber.Ctx, path, label string) error {
	var req documentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Content) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "content is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		req.Title = label
	}
	resp, err := h.send(c, http.MethodPost, path, req)
	if err != nil {
		return err
	}
	h.notify(c, "settings", label+" saved")
	return relay(c, resp, strings.ToLower(label)+" saved")
}

type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CreateFAQ adds an FAQ entry.
func (h *SettingsHandler) CreateFAQ(c *fiber.Ctx) error {
	var req faqRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Question, req.Answer = strings.TrimSpace(req.Question), strings.TrimSpace(req.Answer)
	if req.Question == "" || req.Answer == "" {
		return fiber.NewError(fiber.StatusBadRequest, "question and answer are required")
	}
	resp, err := h.send(c, http.MethodPost, services.PathFAQCreate, req)
	if err != nil {
		return err
	}
	h.notify(c, "settings", "FAQ added")
	c.Status(fiber.StatusCreated)
	return relay(c, resp, "faq created")
}

// Platform relays the platform settings object.
func (h *SettingsHandler) Platform(c *fiber.Ctx) error {
	var settings map[string]any
	if err := services.FetchObject(c.UserContext(), h.backend, token(c), services.PathSettings, nil, &settings); err != nil {
		return err
	}
	return dataResponse(c, settings)
}

// UpdatePlatform forwards a settings patch unchanged.
func (h *SettingsHandler) UpdatePlatform(c *fiber.Ctx) error {
	var patch map[string]any
	if err := parseBody(c, &patch); err != nil {
		return err
	}
	if len(patch) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no settings to update")
	}
	resp, err := h.send(c, http.MethodPut, services.PathSettings, patch)
	if err != nil {
		return err
	}
	h.notify(c, "settings", "Platform settings updated")
	return relay(c, resp, "settings updated")
}

// AdminUsers lists console administrators.
func (h *SettingsHandler) AdminUsers(c *fiber.Ctx) error {
	users, _, err := services.FetchList[models.BackendUser](c.UserContext(), h.backend, token(c), services.PathAdminUsers, nil, "adminUsers", "users")
	if err != nil {
		return err
	}
	members := make([]models.Member, 0, len(users))
	for _, u := range users {
		members = append(members, u.ToMember())
	}
	return dataResponse(c, members)
}

type adminUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateAdminUser adds an administrator.
func (h *SettingsHandler) CreateAdminUser(c *fiber.Ctx) error {
	var req adminUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Name, req.Email = strings.TrimSpace(req.Name), strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name, email and password are required")
	}
	if !strings.Contains(req.Email, "@") {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email")
	}
	if req.Role == "" {
		req.Role = "ADMIN"
	}
	resp, err := h.send(c, http.MethodPost, services.PathAdminUsers, req)
	if err != nil {
		return err
	}
	h.notify(c, "settings", "Admin user "+req.Email+" created")
	c.Status(fiber.StatusCreated)
	return relay(c, resp, "admin user created")
}

// DeleteAdminUser removes an administrator.
func (h *SettingsHandler) DeleteAdminUser(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	if claims, ok := middleware.GetSession(c); ok && claims.AdminID == id {
		return fiber.NewError(fiber.StatusBadRequest, "you cannot delete your own account")
	}
	if _, err := h.send(c, http.MethodDelete, services.AdminUserPath(id), nil); err != nil {
		return err
	}
	h.notify(c, "settings", "Admin user "+id+" deleted")
	return c.JSON(fiber.Map{"success": true, "message": "admin user deleted"})
}
