package stats_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buhba/boba-diary-engine/internal/core/domain"
	"github.com/buhba/boba-diary-engine/internal/core/stats"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Full rollup over the taro/matcha diary", func(t *testing.T) {
		s := stats.Summarize(taroMatchaEntries(), now)

		assert.Equal(t, 2025, s.Year)
		assert.Equal(t, 3, s.DrinkCount)
		assert.True(t, decimal.NewFromInt(12).Equal(s.TotalSpent))
		assert.True(t, decimal.NewFromInt(4).Equal(s.AveragePrice))
		assert.Equal(t, 2, s.UniqueShops)
		assert.Equal(t, 2, s.UniqueFlavors)
		assert.Equal(t, 150, s.PearlsConsumed)
		assert.Equal(t, "Taro", s.TopFlavor.Flavor)
		assert.Equal(t, 2, s.TopFlavor.Count)
	})

	t.Run("Edge Case: empty diary", func(t *testing.T) {
		s := stats.Summarize(nil, now)

		assert.Equal(t, 0, s.DrinkCount)
		assert.True(t, decimal.Zero.Equal(s.TotalSpent))
		assert.True(t, decimal.Zero.Equal(s.AveragePrice))
		assert.Equal(t, 0, s.PearlsConsumed)
		assert.Equal(t, "None", s.TopFlavor.Flavor)
		assert.Equal(t, 0, s.TopFlavor.Count)
	})
}

func TestWindowBreakdown(t *testing.T) {
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Month window drops out-of-window entries from every series", func(t *testing.T) {
		entries := append(taroMatchaEntries(),
			entryOn(time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC), "Thai", "Feng Cha", 7))

		b := stats.WindowBreakdown(entries, domain.WindowMonth, now)

		assert.Equal(t, domain.WindowMonth, b.Window)
		assert.Equal(t, 3, b.DrinkCount, "the April entry is outside the calendar month")
		assert.True(t, decimal.NewFromInt(12).Equal(b.TotalSpent))
		require.Len(t, b.DailySpend, 2)
		assert.Len(t, b.Flavors, 2)
		assert.Equal(t, "May 1, 2025", b.DateRange.Start)
		assert.Equal(t, "May 2, 2025", b.DateRange.End)
		assert.Equal(t, "Tsaocaa", b.TopShop.ShopName)
	})

	t.Run("All-time window keeps everything", func(t *testing.T) {
		entries := append(taroMatchaEntries(),
			entryOn(time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC), "Thai", "Feng Cha", 7))

		b := stats.WindowBreakdown(entries, domain.WindowAllTime, now)

		assert.Equal(t, 4, b.DrinkCount)
		assert.True(t, decimal.NewFromInt(19).Equal(b.TotalSpent))
		assert.Len(t, b.MonthlyTotals, 2)
	})

	t.Run("Conservation holds inside any window", func(t *testing.T) {
		entries := append(taroMatchaEntries(),
			entryOn(time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC), "Thai", "Feng Cha", 7))

		for _, w := range []domain.Window{domain.WindowWeek, domain.WindowMonth, domain.WindowYear, domain.WindowAllTime} {
			b := stats.WindowBreakdown(entries, w, now)

			sum := decimal.Zero
			for _, d := range b.DailySpend {
				sum = sum.Add(d.Cost)
			}
			assert.True(t, b.TotalSpent.Equal(sum), "window %s: daily series must sum to the window total", w)
		}
	})

	t.Run("Edge Case: empty diary yields zero-value breakdown", func(t *testing.T) {
		b := stats.WindowBreakdown(nil, domain.WindowWeek, now)

		assert.Equal(t, 0, b.DrinkCount)
		assert.Empty(t, b.DailySpend)
		assert.Empty(t, b.Flavors)
		assert.Empty(t, b.MonthlyTotals)
		assert.Empty(t, b.ShopVisits)
		assert.Equal(t, "None", b.TopShop.ShopName)
		assert.Equal(t, "", b.DateRange.Start)
	})
}
