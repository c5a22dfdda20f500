package interfaces

import (
	"context"

	"price-intel/internal/advisor"
)

// Advisor turns product and demand histories into forecasts and advice.
type Advisor interface {
	// AnalyzeProduct forecasts prices and decides buy_now, wait or set_alert.
	AnalyzeProduct(ctx context.Context, req advisor.ProductRequest) (*advisor.ProductReport, error)

	// AnalyzeDemand forecasts demand and sizes inventory for one category.
	AnalyzeDemand(ctx context.Context, req advisor.DemandRequest) (*advisor.DemandReport, error)
}
