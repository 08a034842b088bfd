package handlers

import (
	"github.com/example/mlmadmin/internal/models"
)

// Action is one entry of a row's action menu.
type Action struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value,omitempty"`
}

// MemberActions returns the members table menu.
func MemberActions(m models.Member) []Action {
	toggle := Action{Key: "suspend", Label: "Suspend", Value: models.MemberSuspended}
	if m.NextStatus() == models.MemberActive {
		toggle = Action{Key: "activate", Label: "Activate", Value: models.MemberActive}
	}
	return []Action{
		{Key: "view", Label: "View Details"},
		toggle,
		{Key: "reset-password", Label: "Reset Password"},
		{Key: "delete", Label: "Delete"},
	}
}

// GiftActions allows approve/reject while pending and deliver once approved.
func GiftActions(g models.Gift) []Action {
	switch g.Status {
	case models.GiftPending:
		return []Action{{Key: "approve", Label: "Approve"}, {Key: "reject", Label: "Reject"}}
	case models.GiftApproved:
		return []Action{{Key: "deliver", Label: "Mark Delivered"}}
	}
	return []Action{}
}

// KYCActions allows approve/reject while pending.
func KYCActions(k models.KYCRecord) []Action {
	if k.Status == models.KYCPending {
		return []Action{{Key: "approve", Label: "Approve"}, {Key: "reject", Label: "Reject"}}
	}
	return []Action{}
}

// PaymentActions offers a refund for settled payments.
func PaymentActions(p models.Payment) []Action {
	if p.Refundable() {
		return []Action{{Key: "refund", Label: "Refund"}}
	}
	return []Action{}
}

// RewardActions offers revoke until the reward is revoked.
func RewardActions(r models.Reward) []Action {
	if r.Revoked {
		return []Action{}
	}
	return []Action{{Key: "revoke", Label: "Revoke"}}
}

// OrderActions offers every status except the current one.
func OrderActions(o models.Order) []Action {
	out := make([]Action, 0, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		if status == o.Status {
			continue
		}
		out = append(out, Action{Key: "status", Label: "Mark " + status, Value: status})
	}
	return out
}

// actionsByID indexes row menus by row id.
func actionsByID[T any](rows []T, id func(T) string, menu func(T) []Action) map[string][]Action {
	out := make(map[string][]Action, len(rows))
	for _, row := range rows {
		out[id(row)] = menu(row)
	}
	return out
}
