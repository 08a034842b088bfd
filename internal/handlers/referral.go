package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/export"
	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/referral"
	"github.com/example/mlmadmin/internal/services"
)

const maxSearchResults = 5

// ReferralHandler serves the referral tree view.
type ReferralHandler struct {
	base
}

// NewReferralHandler constructs ReferralHandler.
func NewReferralHandler(backend *services.Backend, cfg *config.Config) *ReferralHandler {
	return &ReferralHandler{base: newBase(backend, nil, cfg)}
}

func (h *ReferralHandler) treeForUser(ctx context.Context, tok, userID string) (referral.Node, error) {
	var raw referral.BackendNode
	if err := services.FetchObject(ctx, h.backend, tok, services.ReferralTreePath(userID), nil, &raw); err != nil {
		return referral.Default(), err
	}
	return referral.Normalize(raw), nil
}

func (h *ReferralHandler) treeForCode(ctx context.Context, tok, code string) (referral.Node, error) {
	users, _, err := services.FetchList[models.BackendUser](ctx, h.backend, tok, services.ReferredByPath(code), nil, "users")
	if err != nil {
		return referral.Default(), err
	}
	return referral.FromReferredUsers(code, users), nil
}

func (h *ReferralHandler) respondTree(c *fiber.Ctx, root referral.Node, err error) error {
	shaped := referral.Shape(root, referral.MaxDepth)
	if err != nil {
		status := fiber.StatusBadGateway
		var be *services.BackendError
		if errors.As(err, &be) {
			status = backendStatus(be.Status)
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   errorText(err),
			"data":    shaped,
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    shaped,
		"stats":   referral.Summarize(shaped),
	})
}

// Tree returns the referral tree rooted at a member.
func (h *ReferralHandler) Tree(c *fiber.Ctx) error {
	userID, err := requireParam(c, "userId")
	if err != nil {
		return err
	}
	root, err := h.treeForUser(c.UserContext(), token(c), userID)
	return h.respondTree(c, root, err)
}

// ByCode returns the users referred by a referral code as a tree.
func (h *ReferralHandler) ByCode(c *fiber.Ctx) error {
	code, err := requireParam(c, "code")
	if err != nil {
		return err
	}
	root, err := h.treeForCode(c.UserContext(), token(c), code)
	return h.respondTree(c, root, err)
}

// Search resolves a query: referral codes load the code's tree directly,
// anything else returns up to five matching members.
func (h *ReferralHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.JSON(fiber.Map{"success": true, "kind": "members", "data": []models.Member{}})
	}

	if referral.LooksLikeReferralCode(q) {
		root, err := h.treeForCode(c.UserContext(), token(c), q)
		if err != nil {
			return h.respondTree(c, root, err)
		}
		shaped := referral.Shape(root, referral.MaxDepth)
		return c.JSON(fiber.Map{
			"success": true,
			"kind":    "tree",
			"data":    shaped,
			"stats":   referral.Summarize(shaped),
		})
	}

	users, _, err := services.FetchList[models.BackendUser](c.UserContext(), h.backend, token(c), services.PathUsersSearch, url.Values{"search": {q}}, "users")
	if err != nil {
		return err
	}
	if len(users) > maxSearchResults {
		users = users[:maxSearchResults]
	}
	members := make([]models.Member, 0, len(users))
	for _, u := range users {
		members = append(members, u.ToMember())
	}
	return c.JSON(fiber.Map{"success": true, "kind": "members", "data": members})
}

// Export downloads a member's tree as a PDF outline (default) or xlsx.
func (h *ReferralHandler) Export(c *fiber.Ctx) error {
	userID, err := requireParam(c, "userId")
	if err != nil {
		return err
	}
	root, err := h.treeForUser(c.UserContext(), token(c), userID)
	if err != nil {
		return err
	}
	shaped := referral.Shape(root, referral.MaxDepth)
	stem := export.TreeStem(now())

	if strings.EqualFold(c.Query("format", "pdf"), "xlsx") {
		return sendExport(c, stem, export.TreeTable(shaped))
	}

	var buf bytes.Buffer
	if err := export.WriteTreePDF(&buf, "Referral Tree: "+shaped.Name, shaped); err != nil {
		return err
	}
	c.Attachment(export.Filename(stem, "pdf"))
	c.Set(fiber.HeaderContentType, export.ContentTypePDF)
	return c.Send(buf.Bytes())
}
