package handlers

import (
	"context"
	"errors"
	"net/url"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/export"
	"github.com/example/mlmadmin/internal/filters"
	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/utils"
)

// IncomeHandler serves the income reports page.
type IncomeHandler struct {
	base
}

// NewIncomeHandler constructs IncomeHandler.
func NewIncomeHandler(backend *services.Backend, cfg *config.Config) *IncomeHandler {
	return &IncomeHandler{base: newBase(backend, nil, cfg)}
}

// IncomeSummary is the income page card block.
type IncomeSummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	DirectIncome decimal.Decimal `json:"directIncome"`
	RewardIncome decimal.Decimal `json:"rewardIncome"`
	Commission   decimal.Decimal `json:"commission"`
	Entries      int             `json:"entries"`
}

// TypeTotal is one slice of the by-type breakdown.
type TypeTotal struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// IncomeEntries flattens a report into table rows. Each order is a Direct
// entry; a Commission entry is added only when the backend supplied one.
func IncomeEntries(report models.IncomeReport) []models.IncomeEntry {
	entries := make([]models.IncomeEntry, 0, len(report.Rewards)+len(report.Orders))
	for _, r := range report.Rewards {
		member := models.NotAvailable
		if r.User != nil && r.User.Name != "" {
			member = r.User.Name
		}
		status := "Credited"
		if r.Revoked {
			status = "Revoked"
		}
		entries = append(entries, models.IncomeEntry{
			ID:       "reward-" + r.ID.String(),
			MemberID: r.UserID.String(),
			Member:   member,
			Amount:   decimal.NewFromInt(int64(r.Points)),
			Type:     models.IncomeRewards,
			Category: "Reward Points",
			Date:     models.DisplayDate(r.CreatedAt),
			Status:   status,
			Source:   r.Reason,
		})
	}
	for _, o := range report.Orders {
		member, memberID := models.NotAvailable, o.UserID.String()
		if o.User != nil {
			if o.User.Name != "" {
				member = o.User.Name
			}
			if memberID == "" {
				memberID = o.User.ID.String()
			}
		}
		date := models.DisplayDate(o.CreatedAt)
		entries = append(entries, models.IncomeEntry{
			ID:       "order-" + o.ID.String(),
			MemberID: memberID,
			Member:   member,
			Amount:   o.Total,
			Type:     models.IncomeDirect,
			Category: "Product Sale",
			Date:     date,
			Status:   o.Status,
			Source:   "Order #" + o.ID.String(),
		})
		if o.Commission.Valid && o.Commission.Decimal.IsPositive() {
			entries = append(entries, models.IncomeEntry{
				ID:       "commission-" + o.ID.String(),
				MemberID: memberID,
				Member:   member,
				Amount:   o.Commission.Decimal,
				Type:     models.IncomeCommission,
				Category: "Referral Commission",
				Date:     date,
				Status:   o.Status,
				Source:   "Order #" + o.ID.String(),
			})
		}
	}
	return entries
}

// SummarizeIncome totals the entries. Backend stats, when present, win
// over the client-side sums.
func SummarizeIncome(entries []models.IncomeEntry, stats *models.IncomeStats) (IncomeSummary, []TypeTotal) {
	s := IncomeSummary{
		TotalIncome:  decimal.Zero,
		DirectIncome: decimal.Zero,
		RewardIncome: decimal.Zero,
		Commission:   decimal.Zero,
		Entries:      len(entries),
	}
	for _, e := range entries {
		s.TotalIncome = s.TotalIncome.Add(e.Amount)
		switch e.Type {
		case models.IncomeDirect:
			s.DirectIncome = s.DirectIncome.Add(e.Amount)
		case models.IncomeRewards:
			s.RewardIncome = s.RewardIncome.Add(e.Amount)
		case models.IncomeCommission:
			s.Commission = s.Commission.Add(e.Amount)
		}
	}
	if stats != nil {
		s.TotalIncome = stats.TotalIncome
		s.DirectIncome = stats.TotalOrderIncome
		s.RewardIncome = stats.TotalRewardsIncome
	}

	var byType []TypeTotal
	for _, t := range []TypeTotal{
		{Type: models.IncomeDirect, Amount: s.DirectIncome},
		{Type: models.IncomeRewards, Amount: s.RewardIncome},
		{Type: models.IncomeCommission, Amount: s.Commission},
	} {
		if !t.Amount.IsZero() {
			byType = append(byType, t)
		}
	}
	if byType == nil {
		byType = []TypeTotal{}
	}
	return s, byType
}

// fetchReport forwards the filter so the backend's incomeStats describe the
// same rows the table shows.
func (h *IncomeHandler) fetchReport(ctx context.Context, tok string, f filters.Income) (models.IncomeReport, error) {
	var report models.IncomeReport
	err := services.FetchObject(ctx, h.backend, tok, services.PathIncome, f.Query(), &report)
	return report, err
}

// Report returns filtered income entries with the summary cards.
func (h *IncomeHandler) Report(c *fiber.Ctx) error {
	var f filters.Income
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	report, err := h.fetchReport(c.UserContext(), token(c), f)
	if err != nil {
		return err
	}

	filtered := filters.Apply(IncomeEntries(report), f.Match)
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Date > filtered[j].Date })

	summary, byType := SummarizeIncome(filtered, report.IncomeStats)

	rows, meta := utils.Paginate(filtered, h.pagination(c))
	return listResponse(c, rows, meta, fiber.Map{
		"filters": f,
		"summary": summary,
		"byType":  byType,
	})
}

// TopEarners relays the earnings leaderboard.
func (h *IncomeHandler) TopEarners(c *fiber.Ctx) error {
	list, _, err := services.FetchList[models.TopEarner](c.UserContext(), h.backend, token(c), services.PathTopEarners, nil, "topEarners", "earners")
	if err != nil {
		return err
	}
	return dataResponse(c, list)
}

// Daily relays the daily income series.
func (h *IncomeHandler) Daily(c *fiber.Ctx) error {
	query := url.Values{}
	for _, k := range []string{"startDate", "endDate", "days"} {
		query.Set(k, c.Query(k))
	}
	list, _, err := services.FetchList[models.DailyIncome](c.UserContext(), h.backend, token(c), services.PathDailyIncome, query, "daily", "dailyIncome")
	if err != nil {
		var be *services.BackendError
		if errors.As(err, &be) && be.Status == fiber.StatusNotFound {
			return dataResponse(c, []models.DailyIncome{})
		}
		return err
	}
	return dataResponse(c, list)
}

// Export downloads the filtered income entries.
func (h *IncomeHandler) Export(c *fiber.Ctx) error {
	var f filters.Income
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	report, err := h.fetchReport(c.UserContext(), token(c), f)
	if err != nil {
		return err
	}

	t := export.Table{
		Title:   "Income Reports",
		Sheet:   "Income",
		Headers: []string{"ID", "Member ID", "Member", "Amount", "Type", "Category", "Date", "Status", "Source"},
	}
	for _, e := range filters.Apply(IncomeEntries(report), f.Match) {
		t.Rows = append(t.Rows, []any{e.ID, e.MemberID, e.Member, e.Amount, e.Type, e.Category, e.Date, e.Status, e.Source})
	}
	return sendExport(c, export.IncomeStem(now()), t)
}
