package derive

import (
	"strings"

	"github.com/sharkgitz/eboxai/internal/model"
)

// UrgentThreshold is the urgency score at which an email counts as
// urgent in stats and highlights.
const UrgentThreshold = 7

// maxCategoryLen bounds displayed category labels. Backend categories
// are sometimes whole reasoning sentences rather than labels.
const maxCategoryLen = 30

// SearchEmails matches q case-insensitively against sender, subject and
// body; any field match includes the email. Empty q keeps everything.
func SearchEmails(q string) func([]model.Email) []model.Email {
	q = strings.ToLower(strings.TrimSpace(q))
	return Filter(func(e model.Email) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(e.Sender), q) ||
			strings.Contains(strings.ToLower(e.Subject), q) ||
			strings.Contains(strings.ToLower(e.Body), q)
	})
}

// ByCategory keeps emails whose cleaned category equals cat
// (case-insensitive). Empty cat keeps everything.
func ByCategory(cat string) func([]model.Email) []model.Email {
	cat = strings.ToLower(strings.TrimSpace(cat))
	return Filter(func(e model.Email) bool {
		if cat == "" {
			return true
		}
		return strings.ToLower(CleanCategory(e.Category)) == cat
	})
}

// UnreadOnly keeps unread emails.
func UnreadOnly() func([]model.Email) []model.Email {
	return Filter(func(e model.Email) bool { return !e.IsRead })
}

// SortEmailsByDate orders newest first.
func SortEmailsByDate() func([]model.Email) []model.Email {
	return SortBy(func(a, b model.Email) bool {
		return a.Timestamp.After(b.Timestamp.Time)
	})
}

// SortEmailsByPriority orders by descending urgency score, ties broken
// by descending timestamp (most recent first). Deterministic and stable.
func SortEmailsByPriority() func([]model.Email) []model.Email {
	return SortBy(func(a, b model.Email) bool {
		if a.UrgencyScore != b.UrgencyScore {
			return a.UrgencyScore > b.UrgencyScore
		}
		return a.Timestamp.After(b.Timestamp.Time)
	})
}

// CleanCategory normalizes a backend category for display: markdown
// emphasis markers are stripped and long reasoning strings truncated.
// Cosmetic only; the stored value is never rewritten.
func CleanCategory(cat string) string {
	clean := strings.ReplaceAll(cat, "**", "")
	clean = strings.ReplaceAll(clean, "*", "")
	clean = strings.TrimSpace(clean)
	runes := []rune(clean)
	if len(runes) > maxCategoryLen {
		return string(runes[:maxCategoryLen]) + "..."
	}
	return clean
}

// EmailStats are the dashboard counters. Always recomputed from the full
// canonical collection; never cached apart from it.
type EmailStats struct {
	Total        int
	Unread       int
	Urgent       int
	ActionItems  int
	DarkPatterns int
	Categories   map[string]int
}

// StatsFor computes the aggregate counters for a collection. Category
// keys are cleaned the same way they are displayed.
func StatsFor(emails []model.Email) EmailStats {
	stats := EmailStats{Categories: make(map[string]int)}
	for _, e := range emails {
		stats.Total++
		if !e.IsRead {
			stats.Unread++
		}
		if e.UrgencyScore >= UrgentThreshold {
			stats.Urgent++
		}
		if e.HasDarkPatterns {
			stats.DarkPatterns++
		}
		stats.ActionItems += len(e.ActionItems)
		stats.Categories[CleanCategory(e.Category)]++
	}
	return stats
}
