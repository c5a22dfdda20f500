package ta

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TrendModel is an ordinary least squares line fitted over (x, y) pairs.
type TrendModel struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r2"`
}

func (m TrendModel) Predict(x float64) float64 {
	return m.Slope*x + m.Intercept
}

// LinearRegression fits y = slope*x + intercept. Empty input yields the zero
// model; a single point or constant xs yield a flat line through mean(y).
func LinearRegression(xs, ys []float64) TrendModel {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n == 0 {
		return TrendModel{}
	}
	xs, ys = xs[:n], ys[:n]

	if n == 1 || constant(xs) {
		return TrendModel{Intercept: stat.Mean(ys, nil)}
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if constant(ys) {
		return TrendModel{Slope: slope, Intercept: intercept}
	}
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)
	if math.IsNaN(r2) {
		r2 = 0
	}
	return TrendModel{
		Slope:     slope,
		Intercept: intercept,
		R2:        math.Max(0, math.Min(1, r2)),
	}
}

// IndexRegression fits values against their positions 0..n-1.
func IndexRegression(values []float64) TrendModel {
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	return LinearRegression(xs, values)
}

// SMA averages the last window values; window is clamped to len(values).
func SMA(values []float64, window int) float64 {
	if len(values) == 0 || window <= 0 {
		return 0
	}
	if window > len(values) {
		window = len(values)
	}
	return stat.Mean(values[len(values)-window:], nil)
}

// EMA is seeded at values[0] and scanned left to right.
func EMA(values []float64, alpha float64) float64 {
	if len(values) == 0 {
		return 0
	}
	alpha = math.Max(0, math.Min(1, alpha))
	ema := values[0]
	for _, v := range values[1:] {
		ema = alpha*v + (1-alpha)*ema
	}
	return ema
}

// EMAForecast holds the terminal EMA level flat for periods steps.
func EMAForecast(values []float64, alpha float64, periods int) []float64 {
	if len(values) == 0 || periods <= 0 {
		return []float64{}
	}
	level := EMA(values, alpha)
	out := make([]float64, periods)
	for i := range out {
		out[i] = level
	}
	return out
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

func PopStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.PopStdDev(values, nil)
}

// CoefficientOfVariation is stdev/mean, 0 when the mean is 0.
func CoefficientOfVariation(values []float64) float64 {
	m := Mean(values)
	if m == 0 {
		return 0
	}
	return PopStdDev(values) / m
}

func MinMax(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Returns computes day-over-day fractional changes, skipping zero bases.
func Returns(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		out = append(out, (values[i]-values[i-1])/values[i-1])
	}
	return out
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
