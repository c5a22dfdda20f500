package types

import (
	"sort"
	"time"
)

type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

type DemandPoint struct {
	Date     time.Time `json:"date"`
	Demand   float64   `json:"demand"`
	Category string    `json:"category,omitempty"`
}

// PricePrediction is one forecast day with its 95% band.
type PricePrediction struct {
	Date           time.Time `json:"date"`
	PredictedPrice float64   `json:"predicted_price"`
	Confidence     float64   `json:"confidence"`
	LowerBound     float64   `json:"lower_bound"`
	UpperBound     float64   `json:"upper_bound"`
}

type DemandFactors struct {
	Baseline      float64 `json:"baseline"`
	TrendAdj      float64 `json:"trend_adjustment"`
	SeasonalMult  float64 `json:"seasonal_multiplier"`
	FestivalBoost float64 `json:"festival_boost"`
	Total         float64 `json:"total"`
}

type DemandForecast struct {
	Date            time.Time     `json:"date"`
	PredictedDemand float64       `json:"predicted_demand"`
	Confidence      float64       `json:"confidence"`
	Factors         DemandFactors `json:"factors"`
}

// SortedPrices returns a date-ordered copy; the input is left untouched.
func SortedPrices(history []PricePoint) []PricePoint {
	out := make([]PricePoint, len(history))
	copy(out, history)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func SortedDemand(history []DemandPoint) []DemandPoint {
	out := make([]DemandPoint, len(history))
	copy(out, history)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func Prices(history []PricePoint) []float64 {
	out := make([]float64, len(history))
	for i, p := range history {
		out[i] = p.Price
	}
	return out
}

func Demands(history []DemandPoint) []float64 {
	out := make([]float64, len(history))
	for i, p := range history {
		out[i] = p.Demand
	}
	return out
}

// Clamp bounds v to [lo, hi]; NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from a to b (negative when b is earlier).
func DaysBetween(a, b time.Time) int {
	a, b = Day(a), Day(b)
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
