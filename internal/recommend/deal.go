package recommend

import (
	"fmt"
	"time"

	"price-intel/internal/festival"
	"price-intel/internal/ta"
	"price-intel/internal/types"
)

type DealInput struct {
	Price          float64 `json:"price"`
	AveragePrice   float64 `json:"average_price"`
	MinPrice       float64 `json:"min_price"`
	FestivalActive bool    `json:"festival_active"`
}

// DealScore rates one observed price from 0 to 100.
type DealScore struct {
	Score               int      `json:"score"`
	Rating              string   `json:"rating"` // excellent, good, fair, poor
	DiscountFromAverage float64  `json:"discount_from_average"`
	DistanceFromMin     float64  `json:"distance_from_min"`
	Reasons             []string `json:"reasons"`
}

// ScoreDeal adds points for discount from average (up to 40), closeness to
// the historical minimum (up to 30), an active festival (20) and being below
// average (10).
func ScoreDeal(in DealInput) DealScore {
	ds := DealScore{Reasons: []string{}}

	if in.AveragePrice > 0 {
		ds.DiscountFromAverage = (in.AveragePrice - in.Price) / in.AveragePrice * 100
	}
	switch {
	case in.MinPrice > 0:
		ds.DistanceFromMin = (in.Price - in.MinPrice) / in.MinPrice * 100
	case in.Price > 0:
		ds.DistanceFromMin = 100
	}

	switch d := ds.DiscountFromAverage; {
	case d >= 30:
		ds.Score += 40
	case d >= 20:
		ds.Score += 30
	case d >= 10:
		ds.Score += 20
	case d >= 5:
		ds.Score += 10
	}
	if ds.DiscountFromAverage >= 5 {
		ds.Reasons = append(ds.Reasons, fmt.Sprintf("%.1f%% below the average price", ds.DiscountFromAverage))
	}

	switch d := ds.DistanceFromMin; {
	case d <= 5:
		ds.Score += 30
		ds.Reasons = append(ds.Reasons, "at or near the lowest price seen")
	case d <= 15:
		ds.Score += 20
		ds.Reasons = append(ds.Reasons, fmt.Sprintf("within %.0f%% of the lowest price seen", d))
	case d <= 30:
		ds.Score += 10
		ds.Reasons = append(ds.Reasons, fmt.Sprintf("within %.0f%% of the lowest price seen", d))
	}

	if in.FestivalActive {
		ds.Score += 20
		ds.Reasons = append(ds.Reasons, "festival sale is running")
	}
	if in.Price < in.AveragePrice {
		ds.Score += 10
	}
	ds.Score = min(ds.Score, 100)
	ds.Rating = rate(ds.Score)
	return ds
}

// ScoreDealFromHistory derives the average, minimum and festival status from
// history and the calendar before scoring price.
func ScoreDealFromHistory(price float64, history []types.PricePoint, category string, at time.Time) DealScore {
	prices := types.Prices(history)
	lo, _ := ta.MinMax(prices)
	_, active := festival.ActiveAt(at, category)
	return ScoreDeal(DealInput{
		Price:          price,
		AveragePrice:   ta.Mean(prices),
		MinPrice:       lo,
		FestivalActive: active,
	})
}

func rate(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	case score >= 40:
		return "fair"
	default:
		return "poor"
	}
}
