package seasonality

import (
	"math"
	"time"

	"price-intel/internal/festival"
	"price-intel/internal/ta"
	"price-intel/internal/types"
)

const (
	minPointsPerMonth = 2
	fullConfidenceAt  = 10
	// MinConfidence is the pattern confidence below which SeasonalFactor
	// falls back to a neutral multiplier.
	MinConfidence = 0.3
)

// Pattern describes one calendar month, year-independent. Month is 0-11.
type Pattern struct {
	Month           int      `json:"month"`
	AverageDiscount float64  `json:"average_discount"`
	PriceMultiplier float64  `json:"price_multiplier"`
	Festivals       []string `json:"festivals"`
	Confidence      float64  `json:"confidence"`
	Observations    int      `json:"observations"`
}

// Analyze groups history by calendar month and returns twelve patterns,
// indexed by month. Months with fewer than two observations stay neutral.
func Analyze(history []types.PricePoint, category string) []Pattern {
	byMonth := make([][]float64, 12)
	for _, p := range types.SortedPrices(history) {
		m := int(p.Date.Month()) - 1
		byMonth[m] = append(byMonth[m], p.Price)
	}
	overall := ta.Mean(types.Prices(history))

	patterns := make([]Pattern, 12)
	for m := range patterns {
		pat := Pattern{
			Month:           m,
			PriceMultiplier: 1,
			Festivals:       festival.InMonth(time.Month(m+1), category),
			Observations:    len(byMonth[m]),
		}
		if len(byMonth[m]) >= minPointsPerMonth && overall > 0 {
			monthMean := ta.Mean(byMonth[m])
			pat.PriceMultiplier = monthMean / overall
			pat.AverageDiscount = (overall - monthMean) / overall * 100
			pat.Confidence = math.Min(float64(len(byMonth[m]))/fullConfidenceAt, 1)
		}
		patterns[m] = pat
	}
	return patterns
}

// SeasonalFactor returns the month's multiplier when its pattern is
// trustworthy, else 1.0. month is 0-11.
func SeasonalFactor(patterns []Pattern, month int) float64 {
	for _, p := range patterns {
		if p.Month == month && p.Confidence >= MinConfidence {
			return p.PriceMultiplier
		}
	}
	return 1
}

// CheapestMonth returns the trustworthy pattern with the lowest multiplier.
func CheapestMonth(patterns []Pattern) (Pattern, bool) {
	var best Pattern
	found := false
	for _, p := range patterns {
		if p.Confidence < MinConfidence {
			continue
		}
		if !found || p.PriceMultiplier < best.PriceMultiplier {
			best = p
			found = true
		}
	}
	return best, found
}
