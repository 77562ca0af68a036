// Package stats is the pure aggregation engine behind the diary's home and
// statistics screens. Every function is a deterministic function of the entry
// snapshot it is given and, where time matters, an explicit "now". Nothing
// in this package reads the system clock or mutates its input.
package stats

import (
	"strings"
	"time"

	"github.com/buhba/boba-diary-engine/internal/core/domain"
)

// NormalizeFlavor canonicalizes a flavor label for grouping: trim, lowercase.
// It is a grouping key only; display labels keep the raw spelling.
func NormalizeFlavor(flavor string) string {
	return strings.ToLower(strings.TrimSpace(flavor))
}

// FilterByWindow returns the entries whose Date falls inside the window
// ending at now. The lower bound is inclusive and compared on the full
// timestamp; there is no upper bound.
//
//	week:     rolling 7*24h, not a calendar week
//	month:    calendar month-to-date
//	year:     since Jan 1 of now's year
//	all-time: everything
func FilterByWindow(entries []*domain.Entry, window domain.Window, now time.Time) []*domain.Entry {
	var start time.Time

	switch window {
	case domain.WindowWeek:
		start = now.Add(-7 * 24 * time.Hour)
	case domain.WindowMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case domain.WindowYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		return entries
	}

	filtered := make([]*domain.Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Date.Before(start) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
