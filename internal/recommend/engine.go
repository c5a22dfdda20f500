package recommend

import (
	"fmt"
	"math"
	"time"

	"price-intel/internal/festival"
	"price-intel/internal/forecast"
	"price-intel/internal/ta"
	"price-intel/internal/types"
)

type Action string

const (
	BuyNow   Action = "buy_now"
	Wait     Action = "wait"
	SetAlert Action = "set_alert"
)

const (
	festivalHorizonDays = 30
	nearLowPosition     = 0.25
	lowPosition         = 0.3
	highPosition        = 0.7
	trendBucketPct      = 3
	trendActionPct      = 5
	waitSavingsPct      = 10
	trendWindow         = 7
)

// Factors is the full signal breakdown behind a recommendation.
type Factors struct {
	CurrentPrice       float64          `json:"current_price"`
	AveragePrice       float64          `json:"average_price"`
	MinPrice           float64          `json:"min_price"`
	MaxPrice           float64          `json:"max_price"`
	PricePosition      float64          `json:"price_position"`
	PositionLabel      string           `json:"position_label"` // low, average, high
	Trend              string           `json:"trend"`          // rising, falling, stable
	TrendChangePercent float64          `json:"trend_change_percent"`
	Volatility         string           `json:"volatility"` // low, medium, high
	VariationCoeff     float64          `json:"variation_coefficient"`
	FestivalImpact     *festival.Impact `json:"festival_impact,omitempty"`
	PredictionAccuracy float64          `json:"prediction_accuracy"`
	AlreadyDiscounted  bool             `json:"already_discounted"`
	SavingsPercent     float64          `json:"savings_percent"`
}

type Recommendation struct {
	Action             Action    `json:"action"`
	Confidence         float64   `json:"confidence"`
	Reasoning          string    `json:"reasoning"`
	Rule               string    `json:"rule"`
	PredictedBestPrice float64   `json:"predicted_best_price"`
	PredictedBestDate  time.Time `json:"predicted_best_date"`
	SavingsIfWait      float64   `json:"savings_if_wait"`
	Factors            Factors   `json:"factors"`
}

type signals struct {
	Factors
	empty        bool
	festivalSoon bool
	bestPrice    float64
	bestDate     time.Time
	bestDay      int
}

type outcome struct {
	action     Action
	confidence float64
	reasoning  string
}

type rule struct {
	name string
	when func(s *signals) bool
	then func(s *signals) outcome
}

// rules is evaluated top to bottom and the first match wins. The order is
// part of the recommendation contract.
var rules = []rule{
	{
		name: "insufficient_data",
		when: func(s *signals) bool { return s.empty },
		then: func(s *signals) outcome {
			return outcome{SetAlert, 0, "Not enough price history to judge this product yet; set an alert to start tracking it."}
		},
	},
	{
		name: "near_low_no_sale",
		when: func(s *signals) bool { return s.PricePosition < nearLowPosition && !s.festivalSoon },
		then: func(s *signals) outcome {
			return outcome{BuyNow, 0.85, fmt.Sprintf(
				"At %s the price is near its historical low (range %s to %s) and no major sale is due in the next %d days.",
				Rupees(s.CurrentPrice), Rupees(s.MinPrice), Rupees(s.MaxPrice), festivalHorizonDays)}
		},
	},
	{
		name: "festival_ahead",
		when: func(s *signals) bool { return s.festivalSoon && !s.AlreadyDiscounted },
		then: func(s *signals) outcome {
			f := s.FestivalImpact
			return outcome{Wait, f.Confidence, fmt.Sprintf(
				"%s is %d days away with typical discounts of %.0f%%; waiting should beat today's %s. Best window: %s to %s.",
				f.Festival.Name, f.DaysUntil, f.ExpectedDiscount, Rupees(s.CurrentPrice),
				f.BestBuyWindow.Start.Format("02 Jan"), f.BestBuyWindow.End.Format("02 Jan"))}
		},
	},
	{
		name: "festival_discount_live",
		when: func(s *signals) bool {
			return s.festivalSoon && s.AlreadyDiscounted && s.PricePosition < nearLowPosition
		},
		then: func(s *signals) outcome {
			return outcome{BuyNow, 0.9, fmt.Sprintf(
				"%s is %d days away and the price is already discounted to %s, close to its historical low of %s.",
				s.FestivalImpact.Festival.Name, s.FestivalImpact.DaysUntil, Rupees(s.CurrentPrice), Rupees(s.MinPrice))}
		},
	},
	{
		name: "falling_trend",
		when: func(s *signals) bool { return s.TrendChangePercent < -trendActionPct },
		then: func(s *signals) outcome {
			return outcome{Wait, 0.7, fmt.Sprintf(
				"Prices have fallen %.1f%% recently; the downtrend may continue toward %s.",
				math.Abs(s.TrendChangePercent), Rupees(s.bestPrice))}
		},
	},
	{
		name: "rising_trend",
		when: func(s *signals) bool { return s.TrendChangePercent > trendActionPct },
		then: func(s *signals) outcome {
			return outcome{BuyNow, 0.75, fmt.Sprintf(
				"Prices have risen %.1f%% recently; buying now at %s avoids further increases.",
				s.TrendChangePercent, Rupees(s.CurrentPrice))}
		},
	},
	{
		name: "forecast_savings",
		when: func(s *signals) bool { return s.SavingsPercent > waitSavingsPct },
		then: func(s *signals) outcome {
			return outcome{Wait, s.PredictionAccuracy, fmt.Sprintf(
				"Forecast shows a low of %s in %d days (%s), %.1f%% below today's %s.",
				Rupees(s.bestPrice), s.bestDay, s.bestDate.Format("02 Jan 2006"), s.SavingsPercent, Rupees(s.CurrentPrice))}
		},
	},
	{
		name: "high_position",
		when: func(s *signals) bool { return s.PositionLabel == "high" },
		then: func(s *signals) outcome {
			return outcome{SetAlert, 0.65, fmt.Sprintf(
				"At %s the price sits in the upper part of its range (%s to %s); set an alert for a drop.",
				Rupees(s.CurrentPrice), Rupees(s.MinPrice), Rupees(s.MaxPrice))}
		},
	},
	{
		name: "high_volatility",
		when: func(s *signals) bool { return s.Volatility == "high" },
		then: func(s *signals) outcome {
			return outcome{SetAlert, 0.6, fmt.Sprintf(
				"Prices swing widely (%.0f%% variation); set an alert to catch the next dip.",
				s.VariationCoeff*100)}
		},
	},
	{
		name: "no_signal",
		when: func(s *signals) bool { return true },
		then: func(s *signals) outcome {
			return outcome{SetAlert, 0.5, "No strong signal either way; set an alert to track price changes."}
		},
	},
}

// Recommend decides buy_now, wait or set_alert from price history, its
// forecast and the festival calendar as of now.
func Recommend(history []types.PricePoint, predictions []types.PricePrediction, category string, now time.Time) Recommendation {
	s := collect(history, predictions, category, now)
	for _, r := range rules {
		if !r.when(s) {
			continue
		}
		o := r.then(s)
		return Recommendation{
			Action:             o.action,
			Confidence:         types.Clamp(o.confidence, 0, 1),
			Reasoning:          o.reasoning,
			Rule:               r.name,
			PredictedBestPrice: s.bestPrice,
			PredictedBestDate:  s.bestDate,
			SavingsIfWait:      math.Max(0, s.CurrentPrice-s.bestPrice),
			Factors:            s.Factors,
		}
	}
	// unreachable: the last rule always matches
	return Recommendation{Action: SetAlert}
}

func collect(history []types.PricePoint, predictions []types.PricePrediction, category string, now time.Time) *signals {
	s := &signals{}
	s.PricePosition = 0.5
	s.PositionLabel = "average"
	s.Trend = "stable"
	s.Volatility = "low"
	if len(history) == 0 {
		s.empty = true
		return s
	}

	sorted := types.SortedPrices(history)
	prices := types.Prices(sorted)
	s.CurrentPrice = prices[len(prices)-1]
	s.AveragePrice = ta.Mean(prices)
	s.MinPrice, s.MaxPrice = ta.MinMax(prices)

	if s.MaxPrice > s.MinPrice {
		s.PricePosition = (s.CurrentPrice - s.MinPrice) / (s.MaxPrice - s.MinPrice)
	}
	switch {
	case s.PricePosition < lowPosition:
		s.PositionLabel = "low"
	case s.PricePosition > highPosition:
		s.PositionLabel = "high"
	}

	s.TrendChangePercent = trendChange(prices)
	switch {
	case s.TrendChangePercent > trendBucketPct:
		s.Trend = "rising"
	case s.TrendChangePercent < -trendBucketPct:
		s.Trend = "falling"
	}

	s.VariationCoeff = ta.CoefficientOfVariation(prices)
	switch {
	case s.VariationCoeff >= 0.15:
		s.Volatility = "high"
	case s.VariationCoeff >= 0.05:
		s.Volatility = "medium"
	}

	s.FestivalImpact = festival.UpcomingImpact(category, now)
	s.festivalSoon = s.FestivalImpact != nil && s.FestivalImpact.DaysUntil < festivalHorizonDays
	if s.festivalSoon {
		s.AlreadyDiscounted = s.CurrentPrice < s.AveragePrice*(1-s.FestivalImpact.ExpectedDiscount/200)
	}

	s.bestPrice = s.CurrentPrice
	s.bestDate = sorted[len(sorted)-1].Date
	if best, day, ok := forecast.LowestPrediction(predictions); ok {
		s.bestPrice, s.bestDate, s.bestDay = best.PredictedPrice, best.Date, day
	}
	s.PredictionAccuracy = forecast.MeanConfidence(predictions)
	if s.CurrentPrice > 0 {
		s.SavingsPercent = (s.CurrentPrice - s.bestPrice) / s.CurrentPrice * 100
	}
	return s
}

// trendChange compares the mean of the latest min(7, n/3) prices against
// the earliest window of the same size, in percent.
func trendChange(prices []float64) float64 {
	k := min(trendWindow, len(prices)/3)
	if k < 1 {
		k = 1
	}
	early := ta.Mean(prices[:k])
	recent := ta.Mean(prices[len(prices)-k:])
	if early == 0 {
		return 0
	}
	return (recent - early) / early * 100
}
