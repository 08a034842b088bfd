package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/export"
	"github.com/example/mlmadmin/internal/filters"
	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/store"
	"github.com/example/mlmadmin/internal/utils"
)

// GiftNotifier receives gift delivery alerts for the admin chat.
type GiftNotifier interface {
	NotifyGiftDelivered(userName, reward, admin string) error
}

// GiftHandler serves gift management.
type GiftHandler struct {
	base
	telegram GiftNotifier
}

// NewGiftHandler constructs GiftHandler.
func NewGiftHandler(backend *services.Backend, notes store.Notifications, telegram GiftNotifier, cfg *config.Config) *GiftHandler {
	return &GiftHandler{base: newBase(backend, notes, cfg), telegram: telegram}
}

func (h *GiftHandler) fetchGifts(ctx context.Context, tok string) ([]models.Gift, error) {
	list, _, err := services.FetchList[models.Gift](ctx, h.backend, tok, services.PathGifts, nil, "gifts")
	return list, err
}

// CountGifts derives the gift summary cards from a gift list.
func CountGifts(gifts []models.Gift) models.GiftStats {
	stats := models.GiftStats{TotalGifts: len(gifts)}
	for _, g := range gifts {
		switch g.Status {
		case models.GiftPending:
			stats.PendingGifts++
		case models.GiftApproved:
			stats.ApprovedGifts++
		case models.GiftDelivered:
			stats.DeliveredGifts++
		}
	}
	return stats
}

// List returns gifts with the stats block. A stats failure falls back to
// counting the fetched gifts.
func (h *GiftHandler) List(c *fiber.Ctx) error {
	var f filters.Gifts
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}

	ctx, tok := c.UserContext(), token(c)
	var (
		gifts    []models.Gift
		stats    models.GiftStats
		statsErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		gifts, err = h.fetchGifts(gctx, tok)
		return err
	})
	g.Go(func() error {
		statsErr = services.FetchObject(gctx, h.backend, tok, services.PathGiftStats, nil, &stats)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	errs := fiber.Map{}
	if statsErr != nil {
		errs["stats"] = errorText(statsErr)
		stats = CountGifts(gifts)
	}

	rows, meta := utils.Paginate(filters.Apply(gifts, f.Match), h.pagination(c))
	return listResponse(c, rows, meta, fiber.Map{
		"filters": f,
		"stats":   stats,
		"errors":  errs,
		"actions": actionsByID(rows, func(g models.Gift) string { return g.ID.String() }, GiftActions),
	})
}

type giftRequest struct {
	UserID   models.FlexID `json:"userId"`
	Reward   string        `json:"reward"`
	Criteria string        `json:"criteria"`
}

// Create opens a gift for a member.
func (h *GiftHandler) Create(c *fiber.Ctx) error {
	var req giftRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Reward = strings.TrimSpace(req.Reward)
	if req.UserID == "" || req.Reward == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userId and reward are required")
	}

	resp, err := h.send(c, http.MethodPost, services.PathGifts, req)
	if err != nil {
		return err
	}
	h.notify(c, "gift", "Gift "+req.Reward+" created")
	c.Status(fiber.StatusCreated)
	return relay(c, resp, "gift created")
}

// Approve approves a pending gift.
func (h *GiftHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, services.GiftApprovePath, models.GiftApproved)
}

type giftRejectRequest struct {
	Reason string `json:"reason"`
}

// Reject rejects a pending gift.
func (h *GiftHandler) Reject(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req giftRejectRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	resp, err := h.send(c, http.MethodPost, services.GiftRejectPath(id), req)
	if err != nil {
		return err
	}
	h.notify(c, "gift", "Gift "+id+" rejected")
	return relay(c, resp, "gift rejected")
}

type giftDeliverRequest struct {
	UserName string `json:"userName"`
	Reward   string `json:"reward"`
}

// Deliver marks an approved gift delivered and alerts the admin chat.
func (h *GiftHandler) Deliver(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req giftDeliverRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	resp, err := h.send(c, http.MethodPost, services.GiftDeliverPath(id), nil)
	if err != nil {
		return err
	}
	h.notify(c, "gift", "Gift "+id+" delivered")

	if h.telegram != nil {
		admin := adminName(c)
		go func() {
			if err := h.telegram.NotifyGiftDelivered(req.UserName, req.Reward, admin); err != nil {
				log.Printf("[Telegram] gift alert failed: %v", err)
			}
		}()
	}
	return relay(c, resp, "gift "+strings.ToLower(models.GiftDelivered))
}

func (h *GiftHandler) transition(c *fiber.Ctx, path func(string) string, status string) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.send(c, http.MethodPost, path(id), nil)
	if err != nil {
		return err
	}
	h.notify(c, "gift", "Gift "+id+" "+strings.ToLower(status))
	return relay(c, resp, "gift "+strings.ToLower(status))
}

// Delete removes a gift.
func (h *GiftHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.send(c, http.MethodDelete, services.GiftPath(id), nil); err != nil {
		return err
	}
	h.notify(c, "gift", "Gift "+id+" deleted")
	return c.JSON(fiber.Map{"success": true, "message": "gift deleted"})
}

// Logs relays a gift's audit trail.
func (h *GiftHandler) Logs(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	logs, _, err := services.FetchList[json.RawMessage](c.UserContext(), h.backend, token(c), services.GiftLogsPath(id), nil, "logs")
	if err != nil {
		return err
	}
	return dataResponse(c, logs)
}

// Export downloads the filtered gifts.
func (h *GiftHandler) Export(c *fiber.Ctx) error {
	var f filters.Gifts
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	gifts, err := h.fetchGifts(c.UserContext(), token(c))
	if err != nil {
		return err
	}

	t := export.Table{
		Title:   "Gift Management",
		Sheet:   "Gifts",
		Headers: []string{"ID", "Member", "Reward", "Criteria", "Status", "Date"},
	}
	for _, g := range filters.Apply(gifts, f.Match) {
		t.Rows = append(t.Rows, []any{g.ID.String(), g.MemberName(), g.Reward, g.Criteria, g.Status, models.DisplayDate(g.Date)})
	}
	return sendExport(c, export.StemGifts, t)
}
