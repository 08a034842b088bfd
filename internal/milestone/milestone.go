// Package milestone computes a member's progress through referral
// milestones.
package milestone

import (
	"sort"

	"github.com/example/mlmadmin/internal/models"
)

// Sorted returns a copy of milestones ordered by ascending threshold.
func Sorted(milestones []models.Milestone) []models.Milestone {
	out := append([]models.Milestone(nil), milestones...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReferralCount < out[j].ReferralCount
	})
	return out
}

// Enabled drops deactivated milestones, keeping the input order.
func Enabled(milestones []models.Milestone) []models.Milestone {
	out := make([]models.Milestone, 0, len(milestones))
	for _, m := range milestones {
		if m.Enabled() {
			out = append(out, m)
		}
	}
	return out
}

// Progress returns the percentage towards the next milestone, in [0,100].
// With no milestones the progress is 0; past the last one it is 100.
func Progress(count int, milestones []models.Milestone) float64 {
	if len(milestones) == 0 {
		return 0
	}
	sorted := Sorted(milestones)

	next := -1
	for i, m := range sorted {
		if m.ReferralCount > count {
			next = i
			break
		}
	}
	if next < 0 {
		return 100
	}

	prev := 0
	for _, m := range sorted[:next] {
		if m.ReferralCount < sorted[next].ReferralCount {
			prev = m.ReferralCount
		}
	}

	span := sorted[next].ReferralCount - prev
	if span <= 0 {
		return 0
	}
	pct := float64(count-prev) / float64(span) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// Next returns the first milestone not yet reached.
func Next(count int, milestones []models.Milestone) (models.Milestone, bool) {
	for _, m := range Sorted(milestones) {
		if m.ReferralCount > count {
			return m, true
		}
	}
	return models.Milestone{}, false
}

// Split partitions milestones into achieved (count >= threshold) and
// pending, both in ascending order.
func Split(count int, milestones []models.Milestone) (achieved, pending []models.Milestone) {
	achieved = []models.Milestone{}
	pending = []models.Milestone{}
	for _, m := range Sorted(milestones) {
		if count >= m.ReferralCount {
			achieved = append(achieved, m)
		} else {
			pending = append(pending, m)
		}
	}
	return achieved, pending
}

// Summary is the milestone block of a member detail view.
type Summary struct {
	ReferralCount int                `json:"referralCount"`
	Progress      float64            `json:"progress"`
	Next          *models.Milestone  `json:"next"`
	Achieved      []models.Milestone `json:"achieved"`
	Pending       []models.Milestone `json:"pending"`
}

// Summarize builds the full milestone view for a referral count.
func Summarize(count int, milestones []models.Milestone) Summary {
	achieved, pending := Split(count, milestones)
	s := Summary{
		ReferralCount: count,
		Progress:      Progress(count, milestones),
		Achieved:      achieved,
		Pending:       pending,
	}
	if next, ok := Next(count, milestones); ok {
		s.Next = &next
	}
	return s
}
