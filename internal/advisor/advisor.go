package advisor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"price-intel/internal/forecast"
	"price-intel/internal/recommend"
	"price-intel/internal/seasonality"
	"price-intel/internal/store"
	"price-intel/internal/types"
)

// ErrInvalidRequest wraps every validation failure.
var ErrInvalidRequest = errors.New("invalid request")

// ProductRequest asks for a price forecast and buy-or-wait advice.
// HorizonDays of zero uses the configured price horizon. CurrentPrice of
// zero scores the latest observed price.
type ProductRequest struct {
	ProductID    string             `json:"product_id"`
	Name         string             `json:"name"`
	Category     string             `json:"category"`
	CurrentPrice float64            `json:"current_price,omitempty"`
	HorizonDays  int                `json:"horizon_days,omitempty"`
	PriceHistory []types.PricePoint `json:"price_history"`
}

type ProductReport struct {
	ProductID      string                   `json:"product_id"`
	Name           string                   `json:"name"`
	Category       string                   `json:"category"`
	GeneratedAt    time.Time                `json:"generated_at"`
	HistoryPoints  int                      `json:"history_points"`
	Volatility     float64                  `json:"volatility"`
	Predictions    []types.PricePrediction  `json:"predictions"`
	Recommendation recommend.Recommendation `json:"recommendation"`
	Deal           recommend.DealScore      `json:"deal"`
	Seasonality    []seasonality.Pattern    `json:"seasonality"`
	CheapestMonth  *seasonality.Pattern     `json:"cheapest_month,omitempty"`
}

// DemandRequest asks for a demand forecast and stocking advice. Zero
// HorizonDays, LeadTimeDays or SafetyDays fall back to configuration.
type DemandRequest struct {
	Category     string              `json:"category"`
	HorizonDays  int                 `json:"horizon_days,omitempty"`
	LeadTimeDays int                 `json:"lead_time_days,omitempty"`
	SafetyDays   int                 `json:"safety_days,omitempty"`
	History      []types.DemandPoint `json:"history"`
}

type DemandReport struct {
	Category      string                       `json:"category"`
	GeneratedAt   time.Time                    `json:"generated_at"`
	Forecasts     []types.DemandForecast       `json:"forecasts"`
	Insights      forecast.DemandInsights      `json:"insights"`
	Inventory     forecast.InventoryPlan       `json:"inventory"`
	Opportunities []forecast.MarketOpportunity `json:"opportunities"`
}

// Advisor runs the forecasting engine with configured defaults. It holds no
// mutable state and is safe for concurrent use.
type Advisor struct {
	cfg *store.Config
	loc *time.Location
	now func() time.Time
}

type Option func(*Advisor)

// WithClock replaces time.Now as the analysis reference time.
func WithClock(now func() time.Time) Option {
	return func(a *Advisor) { a.now = now }
}

func (a *Advisor) AnalyzeProduct(ctx context.Context, req ProductRequest) (*ProductReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	horizon, err := a.horizon(req.HorizonDays, a.cfg.Forecast.PriceHorizonDays)
	if err != nil {
		return nil, err
	}
	if err := a.checkPrices(req.PriceHistory); err != nil {
		return nil, fmt.Errorf("product %q: %w", req.ProductID, err)
	}
	if req.CurrentPrice < 0 || math.IsNaN(req.CurrentPrice) || math.IsInf(req.CurrentPrice, 0) {
		return nil, fmt.Errorf("%w: current price %v", ErrInvalidRequest, req.CurrentPrice)
	}

	category := a.category(req.Category)
	now := a.now().In(a.loc)

	history := types.SortedPrices(req.PriceHistory)
	predictions := forecast.PredictPrices(history, horizon)
	rec := recommend.Recommend(history, predictions, category, now)

	price := req.CurrentPrice
	if price == 0 && len(history) > 0 {
		price = history[len(history)-1].Price
	}

	patterns := seasonality.Analyze(history, category)
	report := &ProductReport{
		ProductID:      req.ProductID,
		Name:           req.Name,
		Category:       category,
		GeneratedAt:    now,
		HistoryPoints:  len(history),
		Volatility:     forecast.Volatility(types.Prices(history)),
		Predictions:    predictions,
		Recommendation: rec,
		Deal:           recommend.ScoreDealFromHistory(price, history, category, now),
		Seasonality:    patterns,
	}
	if cheapest, ok := seasonality.CheapestMonth(patterns); ok {
		report.CheapestMonth = &cheapest
	}
	return report, nil
}

func (a *Advisor) AnalyzeDemand(ctx context.Context, req DemandRequest) (*DemandReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	horizon, err := a.horizon(req.HorizonDays, a.cfg.Forecast.DemandHorizonDays)
	if err != nil {
		return nil, err
	}
	if req.LeadTimeDays < 0 || req.SafetyDays < 0 {
		return nil, fmt.Errorf("%w: lead time %d and safety days %d must not be negative",
			ErrInvalidRequest, req.LeadTimeDays, req.SafetyDays)
	}
	if err := a.checkDemand(req.History); err != nil {
		return nil, fmt.Errorf("category %q: %w", req.Category, err)
	}

	lead := req.LeadTimeDays
	if lead == 0 {
		lead = a.cfg.Inventory.LeadTimeDays
	}
	safety := req.SafetyDays
	if safety == 0 {
		safety = a.cfg.Inventory.SafetyDays
	}

	category := a.category(req.Category)
	now := a.now().In(a.loc)

	history := normalizeCategories(req.History)
	own := categoryHistory(history, category)

	forecasts := forecast.ForecastDemand(own, horizon, category)
	return &DemandReport{
		Category:      category,
		GeneratedAt:   now,
		Forecasts:     forecasts,
		Insights:      forecast.GenerateDemandInsights(own, forecasts, category, now),
		Inventory:     forecast.CalculateOptimalInventory(forecasts, lead, safety),
		Opportunities: forecast.IdentifyMarketOpportunities(history, now),
	}, nil
}

// normalizeCategories returns a copy with point categories lowercased and
// trimmed, so "Electronics " groups with "electronics".
func normalizeCategories(history []types.DemandPoint) []types.DemandPoint {
	out := make([]types.DemandPoint, len(history))
	for i, p := range history {
		p.Category = strings.ToLower(strings.TrimSpace(p.Category))
		out[i] = p
	}
	return out
}

// categoryHistory keeps the points recorded for category. Untagged points
// belong to every category.
func categoryHistory(history []types.DemandPoint, category string) []types.DemandPoint {
	out := make([]types.DemandPoint, 0, len(history))
	for _, p := range history {
		if p.Category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (a *Advisor) horizon(requested, fallback int) (int, error) {
	if requested == 0 {
		return fallback, nil
	}
	if requested < 0 || requested > a.cfg.Forecast.MaxHorizonDays {
		return 0, fmt.Errorf("%w: horizon %d outside 1-%d days",
			ErrInvalidRequest, requested, a.cfg.Forecast.MaxHorizonDays)
	}
	return requested, nil
}

func (a *Advisor) category(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return a.cfg.Forecast.DefaultCategory
	}
	return c
}

func (a *Advisor) checkPrices(history []types.PricePoint) error {
	if len(history) < a.cfg.Forecast.MinHistoryPoints {
		return fmt.Errorf("%w: %d price points, need at least %d",
			ErrInvalidRequest, len(history), a.cfg.Forecast.MinHistoryPoints)
	}
	for i, p := range history {
		if p.Date.IsZero() {
			return fmt.Errorf("%w: price point %d has no date", ErrInvalidRequest, i)
		}
		if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return fmt.Errorf("%w: price point %d has price %v", ErrInvalidRequest, i, p.Price)
		}
	}
	return nil
}

func (a *Advisor) checkDemand(history []types.DemandPoint) error {
	if len(history) < a.cfg.Forecast.MinHistoryPoints {
		return fmt.Errorf("%w: %d demand points, need at least %d",
			ErrInvalidRequest, len(history), a.cfg.Forecast.MinHistoryPoints)
	}
	for i, p := range history {
		if p.Date.IsZero() {
			return fmt.Errorf("%w: demand point %d has no date", ErrInvalidRequest, i)
		}
		if p.Demand < 0 || math.IsNaN(p.Demand) || math.IsInf(p.Demand, 0) {
			return fmt.Errorf("%w: demand point %d has demand %v", ErrInvalidRequest, i, p.Demand)
		}
	}
	return nil
}
