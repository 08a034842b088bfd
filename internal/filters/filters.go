// Package filters holds the row predicates applied to backend lists before
// pagination. Empty values and "All" match everything.
package filters

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/mlmadmin/internal/models"
)

// All is the catch-all option of every select filter.
const All = "All"

// Apply returns the rows accepted by match, preserving order.
func Apply[T any](rows []T, match func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if match(row) {
			out = append(out, row)
		}
	}
	return out
}

// Members filters the members page.
type Members struct {
	Search string `query:"search" json:"search"`
	Status string `query:"status" json:"status"`
}

func (f Members) Match(m models.Member) bool {
	if !equalOption(f.Status, m.Status) {
		return false
	}
	q := strings.TrimSpace(f.Search)
	if q == "" {
		return true
	}
	return containsFold(m.Name, q) ||
		containsFold(m.Email, q) ||
		containsFold(m.ReferralCode, q) ||
		strings.Contains(m.Phone, q)
}

// Orders filters the orders page.
type Orders struct {
	Status   string `query:"status" json:"status"`
	Type     string `query:"type" json:"type"`
	Customer string `query:"customer" json:"customer"`
	DateFrom string `query:"dateFrom" json:"dateFrom"`
	DateTo   string `query:"dateTo" json:"dateTo"`
}

func (f Orders) Match(o models.Order) bool {
	return equalOption(f.Status, o.Status) &&
		equalOption(f.Type, o.Type) &&
		containsFold(o.Customer, f.Customer) &&
		inDateRange(o.OrderDate, f.DateFrom, f.DateTo)
}

// Payments filters the payments page.
type Payments struct {
	Status    string `query:"status" json:"status"`
	Method    string `query:"method" json:"method"`
	Member    string `query:"member" json:"member"`
	MinAmount string `query:"minAmount" json:"minAmount"`
	MaxAmount string `query:"maxAmount" json:"maxAmount"`
}

func (f Payments) Match(p models.Payment) bool {
	return equalOption(f.Status, p.Status) &&
		equalOption(f.Method, p.Method) &&
		containsFold(p.Member, f.Member) &&
		inAmountRange(p.Amount, f.MinAmount, f.MaxAmount)
}

// Redeem filters the redeem request table. Requests with nothing to pay
// are always dropped.
type Redeem struct {
	Status string `query:"status" json:"status"`
	Member string `query:"member" json:"member"`
}

func (f Redeem) Match(r models.RedeemRequest) bool {
	if !r.RedeemAmount.IsPositive() {
		return false
	}
	return equalOption(f.Status, r.RedeemStatus) && containsFold(r.User.Name, f.Member)
}

// Wallets filters the wallet and payout lists.
type Wallets struct {
	Member string `query:"member" json:"member"`
	Status string `query:"status" json:"status"`
}

func (f Wallets) Match(w models.Wallet) bool {
	return equalOption(f.Status, w.Status) && containsFold(w.MemberName(), f.Member)
}

func (f Wallets) MatchPayout(p models.Payout) bool {
	return equalOption(f.Status, p.Status) && containsFold(p.User.Name, f.Member)
}

// Gifts filters the gift management page.
type Gifts struct {
	Reward   string `query:"reward" json:"reward"`
	Status   string `query:"status" json:"status"`
	Member   string `query:"member" json:"member"`
	DateFrom string `query:"dateFrom" json:"dateFrom"`
	DateTo   string `query:"dateTo" json:"dateTo"`
}

func (f Gifts) Match(g models.Gift) bool {
	return equalOption(f.Reward, g.Reward) &&
		equalOption(f.Status, g.Status) &&
		containsFold(g.MemberName(), f.Member) &&
		inDateRange(models.DisplayDate(g.Date), f.DateFrom, f.DateTo)
}

// Rewards filters the rewards page. Revoked is "All", "true" or "false".
type Rewards struct {
	UserID   string `query:"userId" json:"userId"`
	Reason   string `query:"reason" json:"reason"`
	Revoked  string `query:"revoked" json:"revoked"`
	DateFrom string `query:"dateFrom" json:"dateFrom"`
	DateTo   string `query:"dateTo" json:"dateTo"`
}

func (f Rewards) Match(r models.Reward) bool {
	if f.UserID != "" && r.UserID.String() != strings.TrimSpace(f.UserID) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(f.Revoked)) {
	case "true":
		if !r.Revoked {
			return false
		}
	case "false":
		if r.Revoked {
			return false
		}
	}
	return containsFold(r.Reason, f.Reason) &&
		inDateRange(models.DisplayDate(r.CreatedAt), f.DateFrom, f.DateTo)
}

// Query returns the filter as backend query parameters.
func (f Rewards) Query() url.Values {
	q := url.Values{}
	q.Set("userId", strings.TrimSpace(f.UserID))
	q.Set("reason", strings.TrimSpace(f.Reason))
	if v := strings.ToLower(f.Revoked); v == "true" || v == "false" {
		q.Set("revoked", v)
	}
	q.Set("startDate", dayPart(f.DateFrom))
	q.Set("endDate", dayPart(f.DateTo))
	return q
}

// Income filters the income report entries.
type Income struct {
	Type      string `query:"type" json:"type"`
	Member    string `query:"member" json:"member"`
	MinAmount string `query:"minAmount" json:"minAmount"`
	MaxAmount string `query:"maxAmount" json:"maxAmount"`
	DateFrom  string `query:"dateFrom" json:"dateFrom"`
	DateTo    string `query:"dateTo" json:"dateTo"`
}

func (f Income) Match(e models.IncomeEntry) bool {
	return equalOption(f.Type, e.Type) &&
		containsFold(e.Member, f.Member) &&
		inAmountRange(e.Amount, f.MinAmount, f.MaxAmount) &&
		inDateRange(e.Date, f.DateFrom, f.DateTo)
}

// Query returns the filter as backend query parameters. The "All" type is
// not sent.
func (f Income) Query() url.Values {
	q := url.Values{}
	q.Set("dateFrom", dayPart(f.DateFrom))
	q.Set("dateTo", dayPart(f.DateTo))
	q.Set("member", strings.TrimSpace(f.Member))
	if t := strings.TrimSpace(f.Type); t != All {
		q.Set("type", t)
	}
	q.Set("minAmount", strings.TrimSpace(f.MinAmount))
	q.Set("maxAmount", strings.TrimSpace(f.MaxAmount))
	return q
}

// KYC filters the verification queue.
type KYC struct {
	Search string `query:"search" json:"search"`
	Status string `query:"status" json:"status"`
}

func (f KYC) Match(k models.KYCRecord) bool {
	if !equalOption(f.Status, k.Status) {
		return false
	}
	q := strings.TrimSpace(f.Search)
	return q == "" || containsFold(k.Member, q) || containsFold(k.DocNumber, q)
}

// Products filters the product catalog.
type Products struct {
	Name   string `query:"name" json:"name"`
	Status string `query:"status" json:"status"`
	Type   string `query:"type" json:"type"`
}

func (f Products) Match(p models.Product) bool {
	return containsFold(p.Name, f.Name) &&
		equalOption(f.Status, p.Status) &&
		equalOption(f.Type, p.Type)
}

func containsFold(value, q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(q))
}

func equalOption(option, value string) bool {
	option = strings.TrimSpace(option)
	if option == "" || option == All {
		return true
	}
	return strings.EqualFold(option, value)
}

// inDateRange compares YYYY-MM-DD strings; both bounds are inclusive.
func inDateRange(date, from, to string) bool {
	from, to = dayPart(from), dayPart(to)
	if from == "" && to == "" {
		return true
	}
	date = dayPart(date)
	if date == "" || date == models.NotAvailable {
		return false
	}
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

func dayPart(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func inAmountRange(amount decimal.Decimal, min, max string) bool {
	if lo, err := decimal.NewFromString(strings.TrimSpace(min)); err == nil && amount.LessThan(lo) {
		return false
	}
	if hi, err := decimal.NewFromString(strings.TrimSpace(max)); err == nil && amount.GreaterThan(hi) {
		return false
	}
	return true
}
