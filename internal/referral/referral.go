// Package referral normalizes backend referral trees and shapes them for
// depth-limited display.
package referral

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/mlmadmin/internal/models"
)

// MaxDepth is the deepest level rendered by the tree view.
const MaxDepth = 4

// DefaultName is the root label when no tree could be loaded.
const DefaultName = "No Data Available"

// BackendNode is a referral-tree node as returned by the backend.
type BackendNode struct {
	ID             models.FlexID       `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	MobileNumber   string              `json:"mobileNumber"`
	CreatedAt      string              `json:"createdAt"`
	CreatedAtSnake string              `json:"created_at"`
	ReferralCount  models.FlexInt      `json:"referralCount"`
	TotalReferrals models.FlexInt      `json:"totalReferrals"`
	WalletBalance  decimal.NullDecimal `json:"walletBalance"`
	Wallet         decimal.NullDecimal `json:"wallet"`
	ReferralCode   string              `json:"referralCode"`
	ReferralSnake  string              `json:"referral_code"`
	Status         string              `json:"status"`
	Role           string              `json:"role"`
	Children       []BackendNode       `json:"children"`
}

// Node is a normalized referral-tree node.
type Node struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	MobileNumber   string          `json:"mobileNumber,omitempty"`
	JoinDate       string          `json:"joinDate"`
	TotalReferrals int             `json:"totalReferrals"`
	Wallet         decimal.Decimal `json:"wallet"`
	ReferralCode   string          `json:"referralCode"`
	Status         string          `json:"status"`
	Role           string          `json:"role,omitempty"`
	Children       []Node          `json:"children"`

	Level          int  `json:"level,omitempty"`
	Expanded       bool `json:"expanded"`
	Expandable     bool `json:"expandable"`
	HiddenChildren int  `json:"hidden_children,omitempty"`
}

// Default returns the placeholder tree.
func Default() Node {
	return Node{
		ID:       "0",
		Name:     DefaultName,
		JoinDate: models.NotAvailable,
		Wallet:   decimal.Zero,
		Children: []Node{},
	}
}

// Normalize converts a backend node and its descendants.
func Normalize(n BackendNode) Node {
	out := Node{
		ID:             n.ID.String(),
		Name:           orDefault(n.Name, "Unknown"),
		Email:          n.Email,
		MobileNumber:   n.MobileNumber,
		JoinDate:       models.DisplayDate(first(n.CreatedAt, n.CreatedAtSnake)),
		TotalReferrals: n.ReferralCount.Int(),
		Wallet:         n.WalletBalance.Decimal,
		ReferralCode:   first(n.ReferralCode, n.ReferralSnake),
		Status:         n.Status,
		Role:           n.Role,
		Children:       make([]Node, 0, len(n.Children)),
	}
	if out.TotalReferrals == 0 {
		out.TotalReferrals = n.TotalReferrals.Int()
	}
	if !n.WalletBalance.Valid || n.WalletBalance.Decimal.IsZero() {
		out.Wallet = n.Wallet.Decimal
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, Normalize(child))
	}
	return out
}

// FromReferredUsers builds a synthetic tree whose root is the referral
// code and whose children are the users it referred.
func FromReferredUsers(code string, users []models.BackendUser) Node {
	if len(users) == 0 {
		root := Default()
		root.Name = "No users found for referral code: " + code
		return root
	}

	children := make([]Node, 0, len(users))
	for _, u := range users {
		children = append(children, Node{
			ID:             u.ID.String(),
			Name:           orDefault(u.Name, "Unknown"),
			Email:          u.Email,
			MobileNumber:   u.MobileNumber,
			JoinDate:       models.DisplayDate(u.CreatedAt),
			TotalReferrals: u.ReferralCount.Int(),
			Wallet:         decimal.Zero,
			ReferralCode:   u.ReferralCode,
			Status:         u.PaymentStatus,
			Children:       []Node{},
		})
	}

	return Node{
		ID:             "0",
		Name:           "Referral Code: " + code,
		JoinDate:       models.NotAvailable,
		TotalReferrals: len(children),
		Wallet:         decimal.Zero,
		ReferralCode:   code,
		Status:         "ACTIVE",
		Children:       children,
	}
}

// Shape annotates the tree with display levels starting at 1 and cuts
// every node deeper than maxDepth. Nodes expand by default above level 3.
func Shape(root Node, maxDepth int) Node {
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}
	return shape(root, 1, maxDepth)
}

func shape(n Node, level, maxDepth int) Node {
	n.Level = level
	n.Expanded = level < 3
	n.HiddenChildren = 0

	if level >= maxDepth {
		n.HiddenChildren = countNodes(n.Children)
		n.Children = []Node{}
		n.Expandable = false
		return n
	}

	children := make([]Node, 0, len(n.Children))
	for _, child := range n.Children {
		children = append(children, shape(child, level+1, maxDepth))
	}
	n.Children = children
	n.Expandable = len(children) > 0
	return n
}

func countNodes(nodes []Node) int {
	total := len(nodes)
	for _, n := range nodes {
		total += countNodes(n.Children)
	}
	return total
}

// Stats summarizes a tree.
type Stats struct {
	TotalNodes int         `json:"totalNodes"`
	Depth      int         `json:"depth"`
	PerLevel   map[int]int `json:"perLevel"`
}

// Summarize counts nodes per level; the root is level 1.
func Summarize(root Node) Stats {
	s := Stats{PerLevel: map[int]int{}}
	var walk func(n Node, level int)
	walk = func(n Node, level int) {
		s.TotalNodes++
		s.PerLevel[level]++
		if level > s.Depth {
			s.Depth = level
		}
		for _, c := range n.Children {
			walk(c, level+1)
		}
	}
	walk(root, 1)
	return s
}

// Walk visits every node depth-first with its level.
func Walk(root Node, fn func(n Node, level int)) {
	var walk func(n Node, level int)
	walk = func(n Node, level int) {
		fn(n, level)
		for _, c := range n.Children {
			walk(c, level+1)
		}
	}
	walk(root, 1)
}

var referralCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{8}$`)

// LooksLikeReferralCode reports whether q should be searched as a
// referral code rather than a name.
func LooksLikeReferralCode(q string) bool {
	return referralCodePattern.MatchString(strings.TrimSpace(q))
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
