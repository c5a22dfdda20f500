package seasonality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-intel/internal/types"
)

func points(month time.Month, n int, price float64) []types.PricePoint {
	out := make([]types.PricePoint, n)
	for i := range out {
		out[i] = types.PricePoint{Date: time.Date(2024, month, i+1, 0, 0, 0, 0, time.UTC), Price: price}
	}
	return out
}

func TestAnalyzeMonthlyMultipliers(t *testing.T) {
	history := append(points(time.January, 10, 80), points(time.June, 10, 120)...)

	patterns := Analyze(history, "electronics")
	require.Len(t, patterns, 12)

	jan := patterns[0]
	assert.Equal(t, 0, jan.Month)
	assert.InDelta(t, 0.8, jan.PriceMultiplier, 1e-9)
	assert.InDelta(t, 20, jan.AverageDiscount, 1e-9)
	assert.Equal(t, 1.0, jan.Confidence)
	assert.Contains(t, jan.Festivals, "New Year Sale")
	assert.Contains(t, jan.Festivals, "Republic Day Sale")

	jun := patterns[5]
	assert.InDelta(t, 1.2, jun.PriceMultiplier, 1e-9)
	assert.InDelta(t, -20, jun.AverageDiscount, 1e-9)

	mar := patterns[2]
	assert.Equal(t, 1.0, mar.PriceMultiplier)
	assert.Equal(t, 0.0, mar.Confidence)
}

func TestAnalyzeSparseMonthStaysNeutral(t *testing.T) {
	history := append(points(time.January, 1, 50), points(time.February, 5, 100)...)
	patterns := Analyze(history, "fashion")

	assert.Equal(t, 1.0, patterns[0].PriceMultiplier)
	assert.Equal(t, 0.0, patterns[0].Confidence)
	assert.Equal(t, 1, patterns[0].Observations)
	assert.InDelta(t, 0.5, patterns[1].Confidence, 1e-9)
}

func TestAnalyzeEmptyHistory(t *testing.T) {
	patterns := Analyze(nil, "fashion")
	require.Len(t, patterns, 12)
	for _, p := range patterns {
		assert.Equal(t, 1.0, p.PriceMultiplier)
		assert.Equal(t, 0.0, p.Confidence)
	}
}

func TestSeasonalFactor(t *testing.T) {
	history := append(points(time.January, 10, 80), points(time.June, 10, 120)...)
	history = append(history, points(time.August, 2, 100)...)
	patterns := Analyze(history, "electronics")

	assert.Less(t, SeasonalFactor(patterns, 0), 1.0)
	assert.Greater(t, SeasonalFactor(patterns, 5), 1.0)
	// two observations give 0.2 confidence, below the trust threshold
	assert.Equal(t, 1.0, SeasonalFactor(patterns, 7))
	assert.Equal(t, 1.0, SeasonalFactor(patterns, 3))
}

func TestCheapestMonth(t *testing.T) {
	history := append(points(time.January, 10, 80), points(time.June, 10, 120)...)
	best, ok := CheapestMonth(Analyze(history, "electronics"))
	require.True(t, ok)
	assert.Equal(t, 0, best.Month)

	_, ok = CheapestMonth(Analyze(nil, "electronics"))
	assert.False(t, ok)
}
