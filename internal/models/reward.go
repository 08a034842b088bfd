package models

import (
	"github.com/shopspring/decimal"
)

// Reward is a points grant to a member.
type Reward struct {
	ID        FlexID   `json:"id"`
	UserID    FlexID   `json:"userId"`
	User      *UserRef `json:"user,omitempty"`
	Points    FlexInt  `json:"points"`
	Reason    string   `json:"reason"`
	Revoked   bool     `json:"revoked"`
	CreatedAt string   `json:"createdAt"`
}

// Gift statuses.
const (
	GiftPending   = "Pending"
	GiftApproved  = "Approved"
	GiftRejected  = "Rejected"
	GiftDelivered = "Delivered"
)

// Gift is a reward fulfilment request.
type Gift struct {
	ID       FlexID   `json:"id"`
	User     *UserRef `json:"user,omitempty"`
	Reward   string   `json:"reward"`
	Criteria string   `json:"criteria"`
	Status   string   `json:"status"`
	Date     string   `json:"date"`
}

// MemberName returns the gift recipient name.
func (g Gift) MemberName() string {
	if g.User == nil {
		return ""
	}
	return g.User.Name
}

// GiftStats is the gift summary card block.
type GiftStats struct {
	TotalGifts     int `json:"totalGifts"`
	PendingGifts   int `json:"pendingGifts"`
	ApprovedGifts  int `json:"approvedGifts"`
	DeliveredGifts int `json:"deliveredGifts"`
}

// Milestone is a referral-count threshold that unlocks a prize.
type Milestone struct {
	ID            FlexID `json:"id"`
	Name          string `json:"name"`
	ReferralCount int    `json:"referralCount"`
	Prize         string `json:"prize"`
	Active        *bool  `json:"active"`
}

// Enabled reports whether the milestone counts towards progress. A record
// without the flag is enabled.
func (m Milestone) Enabled() bool {
	return m.Active == nil || *m.Active
}

// RewardTarget is a configurable reward goal.
type RewardTarget struct {
	ID     FlexID          `json:"id"`
	Name   string          `json:"name"`
	Target int             `json:"target"`
	Reward string          `json:"reward"`
	Amount decimal.Decimal `json:"amount"`
}
