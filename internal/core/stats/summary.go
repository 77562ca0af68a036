package stats

import (
	"time"

	"github.com/buhba/boba-diary-engine/internal/core/domain"
)

// The home screen guesses ~50 pearls per drink.
const pearlsPerDrink = 50

// Summarize computes the all-time rollup for the home and stats screens.
// Year is taken from the explicit now so the "go-to flavor of {year}" card
// stays deterministic.
func Summarize(entries []*domain.Entry, now time.Time) domain.Summary {
	return domain.Summary{
		Year:           now.Year(),
		DrinkCount:     Count(entries),
		TotalSpent:     TotalSpent(entries),
		AveragePrice:   AveragePrice(entries),
		UniqueShops:    UniqueShopCount(entries),
		UniqueFlavors:  UniqueFlavorCount(entries),
		PearlsConsumed: Count(entries) * pearlsPerDrink,
		TopFlavor:      MostFrequentFlavor(entries),
	}
}

// WindowBreakdown filters the snapshot to the requested window and computes
// every grouped series the stats screen renders.
func WindowBreakdown(entries []*domain.Entry, window domain.Window, now time.Time) domain.Breakdown {
	filtered := FilterByWindow(entries, window, now)
	daily := DailySpend(filtered)

	return domain.Breakdown{
		Window:        window,
		DrinkCount:    Count(filtered),
		TotalSpent:    TotalSpent(filtered),
		AveragePrice:  AveragePrice(filtered),
		DailySpend:    daily,
		Flavors:       FlavorDistribution(filtered),
		MonthlyTotals: MonthlyTotals(filtered),
		ShopVisits:    ShopVisitCounts(filtered),
		TopShop:       MostVisitedShop(filtered),
		DateRange:     SpendDateRange(daily),
	}
}
