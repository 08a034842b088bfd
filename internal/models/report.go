package models

import (
	"github.com/shopspring/decimal"
)

// Income entry types.
const (
	IncomeDirect     = "Direct"
	IncomeRewards    = "Rewards"
	IncomeCommission = "Commission"
)

// IncomeEntry is one row of the income report.
type IncomeEntry struct {
	ID       string          `json:"id"`
	MemberID string          `json:"memberId"`
	Member   string          `json:"member"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
	Status   string          `json:"status"`
	Source   string          `json:"source"`
}

// IncomeOrder is an order as embedded in the income-report response.
type IncomeOrder struct {
	ID         FlexID              `json:"id"`
	UserID     FlexID              `json:"userId"`
	User       *UserRef            `json:"user"`
	Total      decimal.Decimal     `json:"total"`
	Commission decimal.NullDecimal `json:"commission"`
	Status     string              `json:"status"`
	CreatedAt  string              `json:"createdAt"`
}

// IncomeStats is the backend's own income aggregate, when provided.
type IncomeStats struct {
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalRewardsIncome decimal.Decimal `json:"totalRewardsIncome"`
	TotalOrderIncome   decimal.Decimal `json:"totalOrderIncome"`
}

// IncomeReport is the raw income-report response.
type IncomeReport struct {
	Rewards     []Reward      `json:"rewards"`
	Orders      []IncomeOrder `json:"orders"`
	IncomeStats *IncomeStats  `json:"incomeStats"`
}

// TopEarner is a leaderboard row.
type TopEarner struct {
	UserID FlexID          `json:"userId"`
	Name   string          `json:"name"`
	Total  decimal.Decimal `json:"total"`
}

// DailyIncome is one point of the daily income chart.
type DailyIncome struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// KYC statuses.
const (
	KYCPending  = "Pending"
	KYCApproved = "Approved"
	KYCRejected = "Rejected"
)

// KYCRecord is an identity document submission.
type KYCRecord struct {
	ID        FlexID `json:"id"`
	Member    string `json:"member"`
	Doc       string `json:"doc"`
	DocNumber string `json:"docNumber"`
	Upload    string `json:"upload"`
	Status    string `json:"status"`
	Remarks   string `json:"remarks,omitempty"`
	Image     string `json:"img,omitempty"`
}

// FAQ is a frequently-asked-question entry.
type FAQ struct {
	ID       FlexID `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ContentDocument is a privacy policy or terms document.
type ContentDocument struct {
	ID      FlexID `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
