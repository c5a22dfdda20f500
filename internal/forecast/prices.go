package forecast

import (
	"math"

	"price-intel/internal/ta"
	"price-intel/internal/types"
)

const (
	// PriceEMAAlpha smooths the full history for the near-term component.
	PriceEMAAlpha = 0.3
	// maxTrendWeight keeps the EMA component at no less than 30%.
	maxTrendWeight = 0.7
	// z95 is the two-sided 95% normal quantile used for the band.
	z95 = 1.96
)

// PredictPrices forecasts horizon days past the last observation. Near days
// lean on the EMA, far days on the OLS trend; the band widens with the
// square root of days ahead.
func PredictPrices(history []types.PricePoint, horizon int) []types.PricePrediction {
	if len(history) == 0 || horizon <= 0 {
		return []types.PricePrediction{}
	}

	sorted := types.SortedPrices(history)
	prices := types.Prices(sorted)
	trend := ta.IndexRegression(prices)
	ema := ta.EMA(prices, PriceEMAAlpha)
	vol := Volatility(prices)

	lastIndex := float64(len(prices) - 1)
	lastPrice := prices[len(prices)-1]
	lastDate := sorted[len(sorted)-1].Date
	n := float64(horizon)

	out := make([]types.PricePrediction, 0, horizon)
	for d := 1; d <= horizon; d++ {
		day := float64(d)
		trendWeight := math.Min(day/n, maxTrendWeight)
		price := trendWeight*trend.Predict(lastIndex+day) + (1-trendWeight)*ema
		price = math.Max(0, price)

		band := lastPrice * vol * math.Sqrt(day) * z95
		out = append(out, types.PricePrediction{
			Date:           lastDate.AddDate(0, 0, d),
			PredictedPrice: price,
			Confidence:     types.Clamp(trend.R2*math.Exp(-day/(0.5*n)), 0, 1),
			LowerBound:     math.Max(0, price-band),
			UpperBound:     price + band,
		})
	}
	return out
}

// Volatility is the population stdev of day-over-day returns.
func Volatility(prices []float64) float64 {
	return ta.PopStdDev(ta.Returns(prices))
}

// LowestPrediction returns the cheapest forecast day and its 1-based index.
func LowestPrediction(predictions []types.PricePrediction) (types.PricePrediction, int, bool) {
	if len(predictions) == 0 {
		return types.PricePrediction{}, 0, false
	}
	best, idx := predictions[0], 0
	for i, p := range predictions[1:] {
		if p.PredictedPrice < best.PredictedPrice {
			best, idx = p, i+1
		}
	}
	return best, idx + 1, true
}

// MeanConfidence averages the confidence of a forecast run.
func MeanConfidence(predictions []types.PricePrediction) float64 {
	if len(predictions) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range predictions {
		sum += p.Confidence
	}
	return sum / float64(len(predictions))
}
