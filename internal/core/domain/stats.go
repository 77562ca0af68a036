package domain

import (
	"github.com/shopspring/decimal"
)

// Window selects the slice of the diary a stats request looks at.
type Window string

const (
	WindowWeek    Window = "week"
	WindowMonth   Window = "month"
	WindowYear    Window = "year"
	WindowAllTime Window = "all-time"
)

func (w Window) Valid() bool {
	switch w {
	case WindowWeek, WindowMonth, WindowYear, WindowAllTime:
		return true
	}
	return false
}

type DailySpend struct {
	Date string          `json:"date"`
	Day  int             `json:"day"`
	Cost decimal.Decimal `json:"cost"`
}

type FlavorStat struct {
	Flavor     string          `json:"flavor"`
	Count      int             `json:"count"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Percentage float64         `json:"percentage"`
}

type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type ShopVisitCount struct {
	ShopName string `json:"shop_name"`
	Count    int    `json:"count"`
}

type TopFlavor struct {
	Flavor string `json:"flavor"`
	Count  int    `json:"count"`
}

type TopShop struct {
	ShopName string `json:"shop_name"`
	Count    int    `json:"count"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary is the all-time rollup behind the home and stats screens.
type Summary struct {
	Year           int             `json:"year"`
	DrinkCount     int             `json:"drink_count"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	AveragePrice   decimal.Decimal `json:"average_price"`
	UniqueShops    int             `json:"unique_shops"`
	UniqueFlavors  int             `json:"unique_flavors"`
	PearlsConsumed int             `json:"pearls_consumed"`
	TopFlavor      TopFlavor       `json:"top_flavor"`
}

// Breakdown is the windowed view behind the stats screen charts.
type Breakdown struct {
	Window        Window           `json:"window"`
	DrinkCount    int              `json:"drink_count"`
	TotalSpent    decimal.Decimal  `json:"total_spent"`
	AveragePrice  decimal.Decimal  `json:"average_price"`
	DailySpend    []DailySpend     `json:"daily_spend"`
	Flavors       []FlavorStat     `json:"flavors"`
	MonthlyTotals []MonthlyTotal   `json:"monthly_totals"`
	ShopVisits    []ShopVisitCount `json:"shop_visits"`
	TopShop       TopShop          `json:"top_shop"`
	DateRange     DateRange        `json:"date_range"`
}
