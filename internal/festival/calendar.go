package festival

import (
	"slices"
	"time"

	"price-intel/internal/types"
)

// CatchAllCategory marks festivals relevant to every product category.
const CatchAllCategory = "electronics"

// UpcomingWindowDays bounds how far ahead UpcomingImpact looks.
const UpcomingWindowDays = 60

// Festival is a catalog template instantiated for a specific year.
type Festival struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Date             time.Time `json:"date"`
	Categories       []string  `json:"categories"`
	TypicalDiscount  float64   `json:"typical_discount"`
	DemandMultiplier float64   `json:"demand_multiplier"`
	PrePeriodDays    int       `json:"pre_period_days"`
	PostPeriodDays   int       `json:"post_period_days"`
}

// WindowStart and WindowEnd bound the days the festival is active.
func (f Festival) WindowStart() time.Time { return f.Date.AddDate(0, 0, -f.PrePeriodDays) }
func (f Festival) WindowEnd() time.Time   { return f.Date.AddDate(0, 0, f.PostPeriodDays) }

// Contains reports whether date falls inside the festival window, by day.
func (f Festival) Contains(date time.Time) bool {
	d := types.DaysBetween(f.Date, date)
	return d >= -f.PrePeriodDays && d <= f.PostPeriodDays
}

// Matches applies the category rule: exact tag, or a catch-all festival.
func (f Festival) Matches(category string) bool {
	return slices.Contains(f.Categories, category) || slices.Contains(f.Categories, CatchAllCategory)
}

type BuyWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Impact struct {
	Festival         Festival  `json:"festival"`
	ExpectedDiscount float64   `json:"expected_discount"`
	Confidence       float64   `json:"confidence"`
	DaysUntil        int       `json:"days_until"`
	BestBuyWindow    BuyWindow `json:"best_buy_window"`
}

type template struct {
	id, name         string
	month            time.Month
	day              int
	categories       []string
	discount         float64
	demandMultiplier float64
	pre, post        int
}

// Lunar festivals (Holi, Eid, Akshaya Tritiya, Raksha Bandhan, Ganesh
// Chaturthi, Dussehra, Dhanteras, Diwali) use fixed Gregorian anchors and
// drift against the real date from year to year.
var catalog = []template{
	{"new-year-sale", "New Year Sale", time.January, 1, []string{"electronics", "fashion", "home"}, 30, 1.3, 3, 5},
	{"republic-day-sale", "Republic Day Sale", time.January, 26, []string{"electronics", "fashion", "home", "appliances"}, 40, 1.6, 5, 2},
	{"valentines-day", "Valentine's Day", time.February, 14, []string{"fashion", "jewelry", "gifts", "beauty"}, 20, 1.4, 7, 1},
	{"holi", "Holi", time.March, 14, []string{"fashion", "home", "food", "beauty"}, 25, 1.3, 5, 1},
	{"eid-ul-fitr", "Eid ul-Fitr", time.April, 10, []string{"fashion", "food", "jewelry"}, 20, 1.4, 7, 3},
	{"akshaya-tritiya", "Akshaya Tritiya", time.May, 10, []string{"jewelry"}, 15, 1.8, 3, 1},
	{"prime-day", "Prime Day", time.July, 15, []string{"electronics", "fashion", "home", "appliances"}, 45, 1.8, 2, 2},
	{"independence-day-sale", "Independence Day Sale", time.August, 15, []string{"electronics", "fashion", "home"}, 40, 1.6, 5, 2},
	{"raksha-bandhan", "Raksha Bandhan", time.August, 19, []string{"gifts", "fashion", "jewelry", "food"}, 20, 1.3, 7, 1},
	{"ganesh-chaturthi", "Ganesh Chaturthi", time.September, 7, []string{"home", "food", "decor"}, 20, 1.4, 5, 10},
	{"big-billion-days", "Big Billion Days", time.October, 8, []string{"electronics", "fashion", "home", "appliances", "beauty"}, 60, 2.5, 3, 7},
	{"dussehra", "Dussehra", time.October, 12, []string{"fashion", "jewelry", "home", "automobile"}, 35, 1.7, 9, 1},
	{"dhanteras", "Dhanteras", time.October, 29, []string{"jewelry", "electronics", "appliances", "automobile"}, 30, 2.0, 3, 0},
	{"diwali", "Diwali", time.November, 1, []string{"electronics", "fashion", "home", "jewelry", "gifts", "appliances", "decor"}, 50, 2.5, 10, 3},
	{"black-friday", "Black Friday", time.November, 28, []string{"electronics", "fashion", "beauty"}, 50, 1.9, 3, 3},
	{"christmas", "Christmas", time.December, 25, []string{"gifts", "fashion", "electronics", "decor"}, 30, 1.5, 10, 1},
}

// FestivalsForYear instantiates the catalog for year in catalog order.
// Dates are midnight UTC.
func FestivalsForYear(year int) []Festival {
	return FestivalsForYearIn(year, time.UTC)
}

// FestivalsForYearIn instantiates the catalog with dates in loc.
func FestivalsForYearIn(year int, loc *time.Location) []Festival {
	out := make([]Festival, len(catalog))
	for i, t := range catalog {
		out[i] = Festival{
			ID:               t.id,
			Name:             t.name,
			Date:             time.Date(year, t.month, t.day, 0, 0, 0, 0, loc),
			Categories:       slices.Clone(t.categories),
			TypicalDiscount:  t.discount,
			DemandMultiplier: t.demandMultiplier,
			PrePeriodDays:    t.pre,
			PostPeriodDays:   t.post,
		}
	}
	return out
}

// InMonth returns the names of matching festivals anchored in month.
func InMonth(month time.Month, category string) []string {
	names := []string{}
	for _, f := range FestivalsForYear(2000) {
		if f.Date.Month() == month && f.Matches(category) {
			names = append(names, f.Name)
		}
	}
	return names
}

// UpcomingImpact picks, among matching festivals in the next 60 days, the one
// with the highest typical discount. Ties keep the earlier catalog entry of
// the earlier year. Returns nil when nothing qualifies.
func UpcomingImpact(category string, now time.Time) *Impact {
	var best *Festival
	bestDays := 0
	for _, year := range []int{now.Year(), now.Year() + 1} {
		for _, f := range FestivalsForYearIn(year, now.Location()) {
			days := types.DaysBetween(now, f.Date)
			if days < 0 || days > UpcomingWindowDays || !f.Matches(category) {
				continue
			}
			if best == nil || f.TypicalDiscount > best.TypicalDiscount {
				best = &f
				bestDays = days
			}
		}
	}
	if best == nil {
		return nil
	}

	confidence := 1 - float64(bestDays)/UpcomingWindowDays
	if confidence < 0.6 {
		confidence = 0.6
	}
	return &Impact{
		Festival:         *best,
		ExpectedDiscount: best.TypicalDiscount,
		Confidence:       confidence,
		DaysUntil:        bestDays,
		BestBuyWindow: BuyWindow{
			Start: best.WindowStart(),
			End:   best.Date.AddDate(0, 0, 2),
		},
	}
}

// ActiveAt returns the first catalog-order matching festival whose window
// contains date. Windows that straddle a year boundary are found via the
// neighbouring years.
func ActiveAt(date time.Time, category string) (Festival, bool) {
	for _, year := range []int{date.Year(), date.Year() + 1, date.Year() - 1} {
		for _, f := range FestivalsForYearIn(year, date.Location()) {
			if f.Matches(category) && f.Contains(date) {
				return f, true
			}
		}
	}
	return Festival{}, false
}

// AdjustedPrice applies the active festival's typical discount to basePrice.
func AdjustedPrice(basePrice float64, date time.Time, category string) float64 {
	f, ok := ActiveAt(date, category)
	if !ok {
		return basePrice
	}
	return basePrice * (1 - f.TypicalDiscount/100)
}

// Around returns matching festivals of the year before, of, and after date.
func Around(date time.Time, category string) []Festival {
	out := []Festival{}
	for _, year := range []int{date.Year() - 1, date.Year(), date.Year() + 1} {
		for _, f := range FestivalsForYearIn(year, date.Location()) {
			if f.Matches(category) {
				out = append(out, f)
			}
		}
	}
	return out
}
