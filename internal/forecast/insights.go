package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"price-intel/internal/festival"
	"price-intel/internal/ta"
	"price-intel/internal/types"
)

const (
	// OpportunityHorizon is the forecast window used for growth estimates.
	OpportunityHorizon = 30
	// DefaultCategory labels demand points that carry no category.
	DefaultCategory = "general"

	festivalOpportunityDays = 30
	festivalImminentDays    = 14
)

// MarketOpportunity summarises 30-day demand growth for one category.
type MarketOpportunity struct {
	Category          string  `json:"category"`
	GrowthPercent     float64 `json:"growth_percent"`
	Outlook           string  `json:"outlook"` // strong_growth, moderate_growth, slight_growth, declining, stable
	Description       string  `json:"description"`
	IsOpportunity     bool    `json:"is_opportunity"`
	ExpectedDemand    float64 `json:"expected_demand"`
	Confidence        float64 `json:"confidence"`
	Festival          string  `json:"festival,omitempty"`
	DaysUntilFestival int     `json:"days_until_festival,omitempty"`
}

type InventoryPlan struct {
	AverageDailyDemand float64 `json:"average_daily_demand"`
	PeakDailyDemand    float64 `json:"peak_daily_demand"`
	LeadTimeDays       int     `json:"lead_time_days"`
	SafetyDays         int     `json:"safety_days"`
	ReorderPoint       float64 `json:"reorder_point"`
	RecommendedStock   float64 `json:"recommended_stock"`
}

type DemandInsights struct {
	Trend               string           `json:"trend"`                // increasing, decreasing, stable
	Volatility          string           `json:"volatility"`           // low, medium, high
	SeasonalityStrength string           `json:"seasonality_strength"` // strong, moderate, weak
	DailySlope          float64          `json:"daily_slope"`
	VariationCoeff      float64          `json:"variation_coefficient"`
	PeakDate            time.Time        `json:"peak_date"`
	PeakDemand          float64          `json:"peak_demand"`
	UpcomingFestival    *festival.Impact `json:"upcoming_festival,omitempty"`
	Recommendation      string           `json:"recommendation"`
}

// IdentifyMarketOpportunities forecasts each category in history over the
// next 30 days and ranks them by growth, highest first.
func IdentifyMarketOpportunities(history []types.DemandPoint, now time.Time) []MarketOpportunity {
	groups := map[string][]types.DemandPoint{}
	order := []string{}
	for _, p := range history {
		cat := p.Category
		if cat == "" {
			cat = DefaultCategory
		}
		if _, seen := groups[cat]; !seen {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], p)
	}

	out := make([]MarketOpportunity, 0, len(order))
	for _, cat := range order {
		points := groups[cat]
		forecasts := ForecastDemand(points, OpportunityHorizon, cat)
		baseline := ta.Mean(types.Demands(points))

		predicted := make([]float64, len(forecasts))
		confidence := 0.0
		for i, f := range forecasts {
			predicted[i] = f.PredictedDemand
			confidence += f.Confidence
		}
		if len(forecasts) > 0 {
			confidence /= float64(len(forecasts))
		}

		growth := 0.0
		if baseline != 0 {
			growth = (ta.Mean(predicted) - baseline) / baseline * 100
		}

		opp := MarketOpportunity{
			Category:       cat,
			GrowthPercent:  growth,
			ExpectedDemand: sum(predicted),
			Confidence:     confidence,
		}
		opp.Outlook, opp.Description = describeGrowth(cat, growth)

		impact := festival.UpcomingImpact(cat, now)
		festivalSoon := impact != nil && impact.DaysUntil < festivalOpportunityDays
		if festivalSoon {
			opp.Festival = impact.Festival.Name
			opp.DaysUntilFestival = impact.DaysUntil
			opp.Description += fmt.Sprintf(" %s is %d days away.", impact.Festival.Name, impact.DaysUntil)
		}
		opp.IsOpportunity = growth > 5 || festivalSoon
		out = append(out, opp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GrowthPercent > out[j].GrowthPercent
	})
	return out
}

func describeGrowth(category string, growth float64) (string, string) {
	switch {
	case growth > 20:
		return "strong_growth", fmt.Sprintf("Strong demand growth of %.1f%% expected for %s; expand stock and promotions.", growth, category)
	case growth > 10:
		return "moderate_growth", fmt.Sprintf("Moderate demand growth of %.1f%% expected for %s; increase stock gradually.", growth, category)
	case growth > 5:
		return "slight_growth", fmt.Sprintf("Slight demand growth of %.1f%% expected for %s; monitor closely.", growth, category)
	case growth < -5:
		return "declining", fmt.Sprintf("Demand for %s expected to decline %.1f%%; reduce orders and clear slow stock.", category, math.Abs(growth))
	default:
		return "stable", fmt.Sprintf("Demand for %s expected to remain stable.", category)
	}
}

// CalculateOptimalInventory sizes the reorder point from average forecast
// demand and the recommended stock from peak forecast demand, both covering
// lead time plus safety days.
func CalculateOptimalInventory(forecasts []types.DemandForecast, leadTimeDays, safetyDays int) InventoryPlan {
	leadTimeDays = max(0, leadTimeDays)
	safetyDays = max(0, safetyDays)
	plan := InventoryPlan{LeadTimeDays: leadTimeDays, SafetyDays: safetyDays}
	if len(forecasts) == 0 {
		return plan
	}

	total := 0.0
	for _, f := range forecasts {
		total += f.PredictedDemand
		plan.PeakDailyDemand = math.Max(plan.PeakDailyDemand, f.PredictedDemand)
	}
	plan.AverageDailyDemand = total / float64(len(forecasts))

	cover := float64(leadTimeDays + safetyDays)
	plan.ReorderPoint = plan.AverageDailyDemand * cover
	plan.RecommendedStock = plan.PeakDailyDemand * cover
	return plan
}

// GenerateDemandInsights classifies history and forecast, then picks a single
// recommendation: imminent festival, rising trend, high volatility, falling
// trend, strong seasonality, steady.
func GenerateDemandInsights(history []types.DemandPoint, forecasts []types.DemandForecast, category string, now time.Time) DemandInsights {
	sorted := types.SortedDemand(history)
	values := types.Demands(sorted)
	baseline := ta.Mean(values)

	ins := DemandInsights{
		Trend:               "stable",
		Volatility:          "low",
		SeasonalityStrength: "weak",
		VariationCoeff:      ta.CoefficientOfVariation(values),
	}

	if len(values) >= 2 {
		ins.DailySlope = ta.IndexRegression(values).Slope
	}
	if baseline != 0 {
		switch rel := ins.DailySlope / baseline; {
		case rel > 0.01:
			ins.Trend = "increasing"
		case rel < -0.01:
			ins.Trend = "decreasing"
		}
	}

	switch {
	case ins.VariationCoeff >= 0.35:
		ins.Volatility = "high"
	case ins.VariationCoeff >= 0.15:
		ins.Volatility = "medium"
	}

	switch spread := monthlySpread(sorted); {
	case spread > 0.3:
		ins.SeasonalityStrength = "strong"
	case spread > 0.1:
		ins.SeasonalityStrength = "moderate"
	}

	for _, f := range forecasts {
		if f.PredictedDemand > ins.PeakDemand {
			ins.PeakDemand = f.PredictedDemand
			ins.PeakDate = f.Date
		}
	}

	ins.UpcomingFestival = festival.UpcomingImpact(category, now)
	ins.Recommendation = recommendFor(ins)
	return ins
}

func recommendFor(ins DemandInsights) string {
	if f := ins.UpcomingFestival; f != nil && f.DaysUntil <= festivalImminentDays {
		return fmt.Sprintf("Stock up ahead of %s in %d days: demand typically rises %.0f%% around the festival.",
			f.Festival.Name, f.DaysUntil, (f.Festival.DemandMultiplier-1)*100)
	}
	switch {
	case ins.Trend == "increasing":
		return "Demand is trending up; raise reorder quantities to avoid stockouts."
	case ins.Volatility == "high":
		return "Demand is volatile; hold extra safety stock."
	case ins.Trend == "decreasing":
		return "Demand is falling; trim orders and clear slow-moving stock."
	case ins.SeasonalityStrength == "strong":
		return "Demand is strongly seasonal; plan inventory around monthly peaks."
	default:
		return "Demand is steady; maintain current inventory levels."
	}
}

// monthlySpread is (max-min)/overall across calendar-month means, 0 when
// fewer than two months are observed.
func monthlySpread(history []types.DemandPoint) float64 {
	byMonth := map[time.Month][]float64{}
	for _, p := range history {
		byMonth[p.Date.Month()] = append(byMonth[p.Date.Month()], p.Demand)
	}
	if len(byMonth) < 2 {
		return 0
	}
	overall := ta.Mean(types.Demands(history))
	if overall == 0 {
		return 0
	}
	means := make([]float64, 0, len(byMonth))
	for _, vals := range byMonth {
		means = append(means, ta.Mean(vals))
	}
	lo, hi := ta.MinMax(means)
	return (hi - lo) / overall
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
