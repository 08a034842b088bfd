package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/export"
	"github.com/example/mlmadmin/internal/filters"
	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/store"
	"github.com/example/mlmadmin/internal/utils"
)

// RewardHandler serves reward administration.
type RewardHandler struct {
	base
}

// NewRewardHandler constructs RewardHandler.
func NewRewardHandler(backend *services.Backend, notes store.Notifications, cfg *config.Config) *RewardHandler {
	return &RewardHandler{base: newBase(backend, notes, cfg)}
}

// fetchRewards forwards the filter to the backend and re-applies it, since
// not every backend build honours every parameter.
func (h *RewardHandler) fetchRewards(ctx context.Context, tok string, f filters.Rewards) ([]models.Reward, error) {
	list, _, err := services.FetchList[models.Reward](ctx, h.backend, tok, services.PathRewards, f.Query(), "rewards")
	if err != nil {
		return nil, err
	}
	return filters.Apply(list, f.Match), nil
}

// List returns filtered, paginated rewards.
func (h *RewardHandler) List(c *fiber.Ctx) error {
	var f filters.Rewards
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	rewards, err := h.fetchRewards(c.UserContext(), token(c), f)
	if err != nil {
		return err
	}

	var points int64
	for _, r := range rewards {
		if !r.Revoked {
			points += int64(r.Points)
		}
	}

	rows, meta := utils.Paginate(rewards, h.pagination(c))
	return listResponse(c, rows, meta, fiber.Map{
		"filters":     f,
		"totalPoints": points,
		"actions":     actionsByID(rows, func(r models.Reward) string { return r.ID.String() }, RewardActions),
	})
}

// Stats relays the backend reward summary.
func (h *RewardHandler) Stats(c *fiber.Ctx) error {
	var stats map[string]any
	if err := services.FetchObject(c.UserContext(), h.backend, token(c), services.PathRewardStats, nil, &stats); err != nil {
		return err
	}
	return dataResponse(c, stats)
}

type rewardRequest struct {
	UserID models.FlexID `json:"userId"`
	Points int64         `json:"points"`
	Reason string        `json:"reason"`
}

func (r *rewardRequest) validate(requireUser bool) error {
	r.Reason = strings.TrimSpace(r.Reason)
	if requireUser && r.UserID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userId is required")
	}
	if r.Points <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "points must be positive")
	}
	if r.Reason == "" {
		return fiber.NewError(fiber.StatusBadRequest, "reason is required")
	}
	return nil
}

// Create grants points to a member.
func (h *RewardHandler) Create(c *fiber.Ctx) error {
	var req rewardRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.validate(true); err != nil {
		return err
	}
	resp, err := h.send(c, http.MethodPost, services.PathRewards, req)
	if err != nil {
		return err
	}
	h.notify(c, "reward", "Reward granted to member "+req.UserID.String())
	c.Status(fiber.StatusCreated)
	return relay(c, resp, "reward created")
}

// Update edits a reward's points and reason.
func (h *RewardHandler) Update(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req rewardRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.validate(false); err != nil {
		return err
	}
	resp, err := h.send(c, http.MethodPut, services.RewardPath(id), req)
	if err != nil {
		return err
	}
	h.notify(c, "reward", "Reward "+id+" updated")
	return relay(c, resp, "reward updated")
}

// Delete removes a reward.
func (h *RewardHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.send(c, http.MethodDelete, services.RewardPath(id), nil); err != nil {
		return err
	}
	h.notify(c, "reward", "Reward "+id+" deleted")
	return c.JSON(fiber.Map{"success": true, "message": "reward deleted"})
}

// Revoke revokes a reward.
func (h *RewardHandler) Revoke(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.send(c, http.MethodPost, services.RewardRevokePath(id), nil)
	if err != nil {
		return err
	}
	h.notify(c, "reward", "Reward "+id+" revoked")
	return relay(c, resp, "reward revoked")
}

// Export downloads the filtered rewards.
func (h *RewardHandler) Export(c *fiber.Ctx) error {
	var f filters.Rewards
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	rewards, err := h.fetchRewards(c.UserContext(), token(c), f)
	if err != nil {
		return err
	}

	t := export.Table{
		Title:   "Rewards",
		Sheet:   "Rewards",
		Headers: []string{"ID", "User ID", "Member", "Points", "Reason", "Revoked", "Created"},
	}
	for _, r := range rewards {
		name := models.NotAvailable
		if r.User != nil && r.User.Name != "" {
			name = r.User.Name
		}
		t.Rows = append(t.Rows, []any{r.ID.String(), r.UserID.String(), name, int64(r.Points), r.Reason, r.Revoked, models.DisplayDate(r.CreatedAt)})
	}
	return sendExport(c, export.StemRewards, t)
}
