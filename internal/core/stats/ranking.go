package stats

import (
	"github.com/buhba/boba-diary-engine/internal/core/domain"
)

// NoneLabel is what the rankings report when the diary is empty.
const NoneLabel = "None"

// MostFrequentFlavor returns the flavor group with the highest entry count.
// Grouping is case-insensitive but the reported flavor is the first raw
// spelling seen for the winning group. On a tie the group encountered first
// in input order wins: later groups reaching the same count never overwrite.
func MostFrequentFlavor(entries []*domain.Entry) domain.TopFlavor {
	index := make(map[string]int)
	var groups []domain.TopFlavor

	for _, e := range entries {
		key := NormalizeFlavor(e.Flavor)
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, domain.TopFlavor{Flavor: e.Flavor})
		}
		groups[i].Count++
	}

	top := domain.TopFlavor{Flavor: NoneLabel, Count: 0}
	for _, g := range groups {
		if g.Count > top.Count {
			top = g
		}
	}

	return top
}

// MostVisitedShop is the shop analogue: the head of ShopVisitCounts, with a
// defined zero-value result for an empty diary.
func MostVisitedShop(entries []*domain.Entry) domain.TopShop {
	visits := ShopVisitCounts(entries)
	if len(visits) == 0 {
		return domain.TopShop{ShopName: NoneLabel, Count: 0}
	}
	return domain.TopShop{ShopName: visits[0].ShopName, Count: visits[0].Count}
}
