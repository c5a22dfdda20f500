package forecast

import (
	"math"
	"time"

	"price-intel/internal/festival"
	"price-intel/internal/ta"
	"price-intel/internal/types"
)

// minTrendPoints is the history length below which demand is not trended.
const minTrendPoints = 7

// ForecastDemand projects horizon days of demand past the last observation:
// baseline * (1+trend) * seasonal * festival boost.
func ForecastDemand(history []types.DemandPoint, horizon int, category string) []types.DemandForecast {
	if len(history) == 0 || horizon <= 0 {
		return []types.DemandForecast{}
	}

	sorted := types.SortedDemand(history)
	values := types.Demands(sorted)
	baseline := ta.Mean(values)

	var trend ta.TrendModel
	if len(values) >= minTrendPoints {
		trend = ta.IndexRegression(values)
	}

	lastDate := sorted[len(sorted)-1].Date
	dataConfidence := math.Min(float64(len(values))/30, 0.9)
	fitConfidence := 0.5 + 0.5*trend.R2
	n := float64(horizon)

	out := make([]types.DemandForecast, 0, horizon)
	for d := 1; d <= horizon; d++ {
		day := float64(d)
		date := lastDate.AddDate(0, 0, d)

		trendAdj := 0.0
		if baseline != 0 {
			trendAdj = trend.Slope / baseline * day
		}
		seasonal := SeasonalDemandMultiplier(date.Month())
		boost := FestivalBoost(date, category)
		total := (1 + trendAdj) * seasonal * boost

		out = append(out, types.DemandForecast{
			Date:            date,
			PredictedDemand: math.Max(0, baseline*total),
			Confidence:      types.Clamp(dataConfidence*math.Exp(-day/(0.7*n))*fitConfidence, 0, 1),
			Factors: types.DemandFactors{
				Baseline:      baseline,
				TrendAdj:      trendAdj,
				SeasonalMult:  seasonal,
				FestivalBoost: boost,
				Total:         total,
			},
		})
	}
	return out
}

// SeasonalDemandMultiplier is the fixed retail season table: festive
// quarter high, year-start and mid-year sale months elevated, rest soft.
func SeasonalDemandMultiplier(month time.Month) float64 {
	switch month {
	case time.October, time.November, time.December:
		return 1.4
	case time.January, time.February, time.July, time.August:
		return 1.15
	default:
		return 0.95
	}
}

// FestivalBoost returns the strongest demand multiplier any matching festival
// exerts on date. The festival day and the day after get the full
// multiplier; the pre-period ramps up from 1.0 and the post-period decays
// back to 1.0.
func FestivalBoost(date time.Time, category string) float64 {
	best := 1.0
	for _, f := range festival.Around(date, category) {
		if b := boostFor(f, types.DaysBetween(date, f.Date)); b > best {
			best = b
		}
	}
	return best
}

// daysUntil is positive before the festival and negative after it.
func boostFor(f festival.Festival, daysUntil int) float64 {
	lift := f.DemandMultiplier - 1
	switch {
	case daysUntil >= -1 && daysUntil <= 0:
		return f.DemandMultiplier
	case daysUntil > 0 && daysUntil <= f.PrePeriodDays:
		return 1 + lift*(1-float64(daysUntil)/float64(f.PrePeriodDays))
	case daysUntil < -1 && -daysUntil <= f.PostPeriodDays:
		return 1 + lift*(1-float64(-daysUntil)/float64(f.PostPeriodDays))
	default:
		return 1
	}
}
