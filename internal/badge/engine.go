package badge

import (
	"math"
	"time"

	"github.com/pageza/nutripal/backend/internal/models"
)

// Progress is a badge together with the profile's standing on it
type Progress struct {
	Badge    models.Badge `json:"badge"`
	Progress float64      `json:"progress"`
	Earned   bool         `json:"earned"`
	EarnedAt *time.Time   `json:"earned_at,omitempty"`
	// Measured is false for achievements nothing in the history can derive yet
	Measured bool `json:"measured"`
}

// Evaluate computes progress for every badge in catalog order.
// Earned badges are fixed at 100.
func Evaluate(badges []models.Badge, earned []models.UserBadge, activity Activity) []Progress {
	earnedAt := make(map[string]time.Time, len(earned))
	for _, ub := range earned {
		earnedAt[ub.BadgeID] = ub.EarnedAt
	}

	out := make([]Progress, 0, len(badges))
	for _, b := range badges {
		if at, ok := earnedAt[b.ID]; ok {
			out = append(out, Progress{Badge: b, Progress: 100, Earned: true, EarnedAt: &at, Measured: true})
			continue
		}
		progress, measured := criterionProgress(b.Criteria, activity)
		out = append(out, Progress{Badge: b, Progress: progress, Measured: measured})
	}
	return out
}

func criterionProgress(c models.BadgeCriteria, activity Activity) (float64, bool) {
	switch c.Kind {
	case models.CriteriaStreak:
		return ratio(float64(activity.Streaks[c.Metric]), c.Target), true
	case models.CriteriaTotal:
		return ratio(activity.Totals[c.Metric], c.Target), true
	case models.CriteriaAchievement:
		hit, ok := activity.Achievements[c.Metric]
		if !ok {
			return 0, false
		}
		if hit {
			return 100, true
		}
		return 0, true
	}
	return 0, false
}

func ratio(observed, target float64) float64 {
	if target <= 0 || observed <= 0 {
		return 0
	}
	return math.Min(observed*(100/target), 100)
}

// FilterByCategory keeps the entries in category without reordering.
// An empty category keeps everything.
func FilterByCategory(progress []Progress, category models.BadgeCategory) []Progress {
	if category == "" {
		return progress
	}
	out := make([]Progress, 0, len(progress))
	for _, p := range progress {
		if p.Badge.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// TotalPoints is 100 per earned badge plus the progress of every unearned one
func TotalPoints(progress []Progress) float64 {
	var total float64
	for _, p := range progress {
		if p.Earned {
			total += 100
			continue
		}
		total += p.Progress
	}
	return total
}

// Completed lists unearned badges whose progress has reached 100
func Completed(progress []Progress) []models.Badge {
	var out []models.Badge
	for _, p := range progress {
		if !p.Earned && p.Progress >= 100 {
			out = append(out, p.Badge)
		}
	}
	return out
}
