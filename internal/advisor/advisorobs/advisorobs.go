package advisorobs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"price-intel/internal/advisor"
	"price-intel/internal/interfaces"
	"price-intel/internal/logger"
	"price-intel/internal/trace"
)

// observableAdvisor wraps an Advisor with logging and tracing
type observableAdvisor struct {
	inner interfaces.Advisor
}

var _ interfaces.Advisor = (*observableAdvisor)(nil)

func Wrap(inner interfaces.Advisor) interfaces.Advisor {
	return &observableAdvisor{inner: inner}
}

func (o *observableAdvisor) AnalyzeProduct(ctx context.Context, req advisor.ProductRequest) (*advisor.ProductReport, error) {
	ctx, span := trace.StartSpan(ctx, "advisor.AnalyzeProduct",
		attribute.String("product_id", req.ProductID),
		attribute.String("category", req.Category),
		attribute.Int("history_points", len(req.PriceHistory)),
	)
	defer span.End()

	logger.DebugSkip(ctx, 1, "Starting product analysis",
		"product_id", req.ProductID,
		"category", req.Category,
		"history_points", len(req.PriceHistory),
	)
	start := time.Now()

	report, err := o.inner.AnalyzeProduct(ctx, req)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Product analysis failed", err,
			"product_id", req.ProductID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	rec := report.Recommendation
	span.SetAttributes(
		attribute.String("action", string(rec.Action)),
		attribute.String("rule", rec.Rule),
		attribute.Int("deal_score", report.Deal.Score),
	)
	logger.Recommendation(ctx, req.ProductID, string(rec.Action), rec.Confidence, rec.Reasoning,
		"rule", rec.Rule,
		"category", report.Category,
		"current_price", rec.Factors.CurrentPrice,
		"predicted_best_price", rec.PredictedBestPrice,
		"deal_score", report.Deal.Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

func (o *observableAdvisor) AnalyzeDemand(ctx context.Context, req advisor.DemandRequest) (*advisor.DemandReport, error) {
	ctx, span := trace.StartSpan(ctx, "advisor.AnalyzeDemand",
		attribute.String("category", req.Category),
		attribute.Int("history_points", len(req.History)),
	)
	defer span.End()

	logger.DebugSkip(ctx, 1, "Starting demand analysis",
		"category", req.Category,
		"history_points", len(req.History),
	)
	start := time.Now()

	report, err := o.inner.AnalyzeDemand(ctx, req)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Demand analysis failed", err,
			"category", req.Category,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	opportunities := 0
	for _, opp := range report.Opportunities {
		if opp.IsOpportunity {
			opportunities++
		}
	}
	logger.InfoSkip(ctx, 1, "Demand analysis completed",
		"category", report.Category,
		"trend", report.Insights.Trend,
		"volatility", report.Insights.Volatility,
		"reorder_point", report.Inventory.ReorderPoint,
		"recommended_stock", report.Inventory.RecommendedStock,
		"opportunities", opportunities,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}
