package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/milestone"
	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/store"
)

// MilestoneHandler manages referral milestones and reward targets.
type MilestoneHandler struct {
	base
}

// NewMilestoneHandler constructs MilestoneHandler.
func NewMilestoneHandler(backend *services.Backend, notes store.Notifications, cfg *config.Config) *MilestoneHandler {
	return &MilestoneHandler{base: newBase(backend, notes, cfg)}
}

// List returns milestones sorted by referral threshold.
func (h *MilestoneHandler) List(c *fiber.Ctx) error {
	list, _, err := services.FetchList[models.Milestone](c.UserContext(), h.backend, token(c), services.PathMilestones, nil, "milestones")
	if err != nil {
		return err
	}
	return dataResponse(c, milestone.Sorted(list))
}

type milestoneRequest struct {
	Name          string `json:"name"`
	ReferralCount int    `json:"referralCount"`
	Prize         string `json:"prize"`
	Active        *bool  `json:"active,omitempty"`
}

func (r *milestoneRequest) validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Prize = strings.TrimSpace(r.Prize)
	if r.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if r.ReferralCount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "referralCount must be positive")
	}
	return nil
}

// Create adds a milestone.
func (h *MilestoneHandler) Create(c *fiber.Ctx) error {
	var req milestoneRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}
	resp, err := h.send(c, http.MethodPost, services.PathMilestoneNew, req)
	if err != nil {
		return err
	}
	h.notify(c, "milestone", "Milestone "+req.Name+" created")
	c.Status(fiber.StatusCreated)
	return relay(c, resp, "milestone created")
}

// Update edits a milestone.
func (h *MilestoneHandler) Update(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req milestoneRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}
	resp, err := h.send(c, http.MethodPut, services.MilestonePath(id), req)
	if err != nil {
		return err
	}
	h.notify(c, "milestone", "Milestone "+req.Name+" updated")
	return relay(c, resp, "milestone updated")
}

// Delete removes a milestone.
func (h *MilestoneHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.send(c, http.MethodDelete, services.MilestonePath(id), nil); err != nil {
		return err
	}
	h.notify(c, "milestone", "Milestone "+id+" deleted")
	return c.JSON(fiber.Map{"success": true, "message": "milestone deleted"})
}

type activeRequest struct {
	Active *bool `json:"active"`
}

// SetActive toggles whether a milestone counts towards progress.
func (h *MilestoneHandler) SetActive(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req activeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Active == nil {
		return fiber.NewError(fiber.StatusBadRequest, "active is required")
	}
	resp, err := h.send(c, http.MethodPatch, services.MilestoneActivePath(id), req)
	if err != nil {
		return err
	}
	state := "deactivated"
	if *req.Active {
		state = "activated"
	}
	h.notify(c, "milestone", "Milestone "+id+" "+state)
	return relay(c, resp, "milestone "+state)
}

// Targets lists reward targets.
func (h *MilestoneHandler) Targets(c *fiber.Ctx) error {
	list, _, err := services.FetchList[models.RewardTarget](c.UserContext(), h.backend, token(c), services.PathTargetsAll, nil, "rewardTargets", "targets")
	if err != nil {
		return err
	}
	return dataResponse(c, list)
}

type targetRequest struct {
	Name   string          `json:"name"`
	Target int             `json:"target"`
	Reward string          `json:"reward"`
	Amount decimal.Decimal `json:"amount"`
}

func (r *targetRequest) validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Reward = strings.TrimSpace(r.Reward)
	switch {
	case r.Name == "":
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	case r.Target <= 0:
		return fiber.NewError(fiber.StatusBadRequest, "target must be positive")
	case r.Reward == "":
		return fiber.NewError(fiber.StatusBadRequest, "reward is required")
	case r.Amount.IsNegative():
		return fiber.NewError(fiber.StatusBadRequest, "amount must not be negative")
	}
	return nil
}

// CreateTarget adds a reward target.
func (h *MilestoneHandler) CreateTarget(c *fiber.Ctx) error {
	var req targetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}
	resp, err := h.send(c, http.MethodPost, services.PathRewardTarget, req)
	if err != nil {
		return err
	}
	h.notify(c, "target", "Reward target "+req.Name+" created")
	c.Status(fiber.StatusCreated)
	return relay(c, resp, "reward target created")
}

// UpdateTarget edits a reward target.
func (h *MilestoneHandler) UpdateTarget(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req targetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}
	resp, err := h.send(c, http.MethodPut, services.RewardTargetPath(id), req)
	if err != nil {
		return err
	}
	h.notify(c, "target", "Reward target "+req.Name+" updated")
	return relay(c, resp, "reward target updated")
}

// DeleteTarget removes a reward target.
func (h *MilestoneHandler) DeleteTarget(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.send(c, http.MethodDelete, services.RewardTargetPath(id), nil); err != nil {
		return err
	}
	h.notify(c, "target", "Reward target "+id+" deleted")
	return c.JSON(fiber.Map{"success": true, "message": "reward target deleted"})
}
