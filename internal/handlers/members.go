package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/export"
	"github.com/example/mlmadmin/internal/filters"
	"github.com/example/mlmadmin/internal/milestone"
	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/store"
	"github.com/example/mlmadmin/internal/utils"
)

// MemberHandler serves the members page and its row actions.
type MemberHandler struct {
	base
}

// NewMemberHandler constructs MemberHandler.
func NewMemberHandler(backend *services.Backend, notes store.Notifications, cfg *config.Config) *MemberHandler {
	return &MemberHandler{base: newBase(backend, notes, cfg)}
}

func (h *MemberHandler) fetchMembers(ctx context.Context, tok string) ([]models.Member, error) {
	users, _, err := services.FetchList[models.BackendUser](ctx, h.backend, tok, services.PathUsersAll, nil, "users")
	if err != nil {
		return nil, err
	}
	members := make([]models.Member, 0, len(users))
	for _, u := range users {
		members = append(members, u.ToMember())
	}
	return members, nil
}

func (h *MemberHandler) fetchMilestones(ctx context.Context, tok string) ([]models.Milestone, error) {
	query := url.Values{"active": {"true"}, "sortBy": {"referralCount"}, "sortDir": {"asc"}}
	list, _, err := services.FetchList[models.Milestone](ctx, h.backend, tok, services.PathMilestones, query, "milestones")
	if err != nil {
		return nil, err
	}
	return milestone.Sorted(milestone.Enabled(list)), nil
}

// List returns filtered, paginated members with milestone progress.
// A milestone failure degrades to an empty milestone list.
func (h *MemberHandler) List(c *fiber.Ctx) error {
	var f filters.Members
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	pg := h.pagination(c)
	tok := token(c)

	var (
		members      []models.Member
		milestones   []models.Milestone
		milestoneErr error
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error {
		var err error
		members, err = h.fetchMembers(ctx, tok)
		return err
	})
	g.Go(func() error {
		var err error
		milestones, err = h.fetchMilestones(ctx, tok)
		if err != nil {
			milestoneErr = err
			milestones = []models.Milestone{}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	rows, meta := utils.Paginate(filters.Apply(members, f.Match), pg)

	progress := make(map[string]float64, len(rows))
	for _, m := range rows {
		progress[m.ID] = milestone.Progress(m.ReferralCount, milestones)
	}

	errs := fiber.Map{}
	if milestoneErr != nil {
		errs["milestones"] = errorText(milestoneErr)
	}

	return listResponse(c, rows, meta, fiber.Map{
		"filters":    f,
		"milestones": milestones,
		"progress":   progress,
		"actions":    actionsByID(rows, func(m models.Member) string { return m.ID }, MemberActions),
		"statuses":   []string{filters.All, models.MemberActive, models.MemberSuspended, models.MemberPending, models.MemberInactive},
		"errors":     errs,
	})
}

// Detail returns one member with bank details and milestone summary.
func (h *MemberHandler) Detail(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	tok := token(c)

	var (
		user       models.BackendUser
		bank       models.BankDetails
		milestones []models.Milestone
	)
	errs := map[string]string{}
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error {
		return services.FetchObject(ctx, h.backend, tok, services.UserDetailPath(id), nil, &user)
	})
	g.Go(func() error {
		if err := services.FetchObject(ctx, h.backend, tok, services.BankDetailsPath(id), nil, &bank); err != nil {
			errs["bankDetails"] = errorText(err)
		}
		return nil
	})
	g.Go(func() error {
		list, err := h.fetchMilestones(ctx, tok)
		if err != nil {
			list = []models.Milestone{}
		}
		milestones = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	member := user.ToMember()
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"member":      member,
			"bankDetails": bank,
			"milestones":  milestone.Summarize(member.ReferralCount, milestones),
			"actions":     MemberActions(member),
		},
		"errors": errs,
	})
}

type memberStatusRequest struct {
	Status  string `json:"status"`
	Current string `json:"current"`
}

// UpdateStatus toggles a member between Active and Suspended.
func (h *MemberHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req memberStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.Member{Status: req.Current}.NextStatus()
	}
	if status != models.MemberActive && status != models.MemberSuspended {
		return fiber.NewError(fiber.StatusBadRequest, "status must be Active or Suspended")
	}

	if _, err := h.send(c, http.MethodPut, services.UserStatusPath(id), fiber.Map{"status": status}); err != nil {
		return err
	}
	h.notify(c, "member", "Member "+id+" is now "+status)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"id": id, "status": status},
	})
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// ResetPassword asks the backend to reset a member's password.
func (h *MemberHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	var req resetPasswordRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}

	var body any
	if req.Password != "" {
		body = fiber.Map{"password": req.Password}
	}
	resp, err := h.send(c, http.MethodPost, services.UserResetPasswordPath(id), body)
	if err != nil {
		return err
	}
	h.notify(c, "member", "Password reset for member "+id)
	return relay(c, resp, "password reset")
}

// Delete removes a member.
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.send(c, http.MethodDelete, services.UserDeletePath(id), nil); err != nil {
		return err
	}
	h.notify(c, "member", "Member "+id+" deleted")
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": id}})
}

// Export downloads the filtered members.
func (h *MemberHandler) Export(c *fiber.Ctx) error {
	var f filters.Members
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	members, err := h.fetchMembers(c.UserContext(), token(c))
	if err != nil {
		return err
	}

	t := export.Table{
		Title:   "Members",
		Sheet:   "Members",
		Headers: []string{"ID", "Name", "Email", "Phone", "Referral Code", "Status", "Wallet", "Referrals", "Joined On"},
	}
	for _, m := range filters.Apply(members, f.Match) {
		t.Rows = append(t.Rows, []any{m.ID, m.Name, m.Email, m.Phone, m.ReferralCode, m.Status, m.Wallet, m.ReferralCount, m.JoinedOn})
	}
	return sendExport(c, export.StemMembers, t)
}
