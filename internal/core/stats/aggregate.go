package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buhba/boba-diary-engine/internal/core/domain"
)

const (
	dayKeyFormat   = "2006-01-02"
	monthFormat    = "Jan 2006"
	displayFormat  = "Jan 2, 2006"
	monthlyTopN    = 6
	shopVisitsTopN = 5
)

// TotalSpent sums the price of every entry. Empty input yields zero.
func TotalSpent(entries []*domain.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Price)
	}
	return total
}

func Count(entries []*domain.Entry) int {
	return len(entries)
}

// AveragePrice is TotalSpent / Count, defined as zero for an empty set so
// callers never see a division by zero.
func AveragePrice(entries []*domain.Entry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}
	return TotalSpent(entries).Div(decimal.NewFromInt(int64(len(entries))))
}

// UniqueShopCount counts distinct raw shop names. Shop names are NOT
// case-folded: "Latea" and "latea" are two shops. Flavors get the opposite
// treatment, see UniqueFlavorCount.
func UniqueShopCount(entries []*domain.Entry) int {
	shops := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		shops[e.ShopName] = struct{}{}
	}
	return len(shops)
}

// UniqueFlavorCount counts distinct normalized flavors.
func UniqueFlavorCount(entries []*domain.Entry) int {
	flavors := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		flavors[NormalizeFlavor(e.Flavor)] = struct{}{}
	}
	return len(flavors)
}

// DailySpend groups entries by UTC calendar day, sums the price per day and
// returns the series sorted ascending by date. Day carries the day-of-month
// for chart labels.
func DailySpend(entries []*domain.Entry) []domain.DailySpend {
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		key := e.Date.UTC().Format(dayKeyFormat)
		totals[key] = totals[key].Add(e.Price)
	}

	series := make([]domain.DailySpend, 0, len(totals))
	for key, cost := range totals {
		day, _ := time.Parse(dayKeyFormat, key)
		series = append(series, domain.DailySpend{
			Date: key,
			Day:  day.Day(),
			Cost: cost,
		})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return series
}

// FlavorDistribution groups entries by normalized flavor and returns one row
// per group sorted descending by count. Ties keep first-seen input order, and
// the display label is the raw flavor of the first entry seen for the group.
// Percentages are of the whole input set, so they close to 100.
func FlavorDistribution(entries []*domain.Entry) []domain.FlavorStat {
	type group struct {
		display   string
		count     int
		totalCost decimal.Decimal
	}

	index := make(map[string]int)
	var groups []*group

	for _, e := range entries {
		key := NormalizeFlavor(e.Flavor)
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, &group{display: e.Flavor, totalCost: decimal.Zero})
		}
		groups[i].count++
		groups[i].totalCost = groups[i].totalCost.Add(e.Price)
	}

	total := len(entries)
	result := make([]domain.FlavorStat, 0, len(groups))
	for _, g := range groups {
		result = append(result, domain.FlavorStat{
			Flavor:     g.display,
			Count:      g.count,
			TotalCost:  g.totalCost,
			Percentage: float64(g.count) / float64(total) * 100,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result
}

// MonthlyTotals sums spend per calendar month, labels each bucket
// "Jan 2006", sorts most-recent-month first and keeps the newest six.
func MonthlyTotals(entries []*domain.Entry) []domain.MonthlyTotal {
	type bucket struct {
		year  int
		month time.Month
		total decimal.Decimal
	}

	index := make(map[string]int)
	var buckets []*bucket

	for _, e := range entries {
		d := e.Date.UTC()
		key := d.Format(monthFormat)
		i, seen := index[key]
		if !seen {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, &bucket{year: d.Year(), month: d.Month(), total: decimal.Zero})
		}
		buckets[i].total = buckets[i].total.Add(e.Price)
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].year != buckets[j].year {
			return buckets[i].year > buckets[j].year
		}
		return buckets[i].month > buckets[j].month
	})

	if len(buckets) > monthlyTopN {
		buckets = buckets[:monthlyTopN]
	}

	result := make([]domain.MonthlyTotal, 0, len(buckets))
	for _, b := range buckets {
		label := time.Date(b.year, b.month, 1, 0, 0, 0, 0, time.UTC).Format(monthFormat)
		result = append(result, domain.MonthlyTotal{Month: label, Total: b.total})
	}

	return result
}

// ShopVisitCounts counts visits per raw shop name, sorted descending with
// stable first-seen tie order, capped to the top five.
func ShopVisitCounts(entries []*domain.Entry) []domain.ShopVisitCount {
	index := make(map[string]int)
	var counts []domain.ShopVisitCount

	for _, e := range entries {
		i, seen := index[e.ShopName]
		if !seen {
			i = len(counts)
			index[e.ShopName] = i
			counts = append(counts, domain.ShopVisitCount{ShopName: e.ShopName})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if len(counts) > shopVisitsTopN {
		counts = counts[:shopVisitsTopN]
	}

	return counts
}

// SpendDateRange formats the first and last day of an ascending daily series
// for display. An empty series has no range to show.
func SpendDateRange(daily []domain.DailySpend) domain.DateRange {
	if len(daily) == 0 {
		return domain.DateRange{}
	}

	start, _ := time.Parse(dayKeyFormat, daily[0].Date)
	end, _ := time.Parse(dayKeyFormat, daily[len(daily)-1].Date)

	return domain.DateRange{
		Start: start.Format(displayFormat),
		End:   end.Format(displayFormat),
	}
}
