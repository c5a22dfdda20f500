package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"price-intel/internal/advicelog"
	"price-intel/internal/advisor"
	"price-intel/internal/interfaces"
	"price-intel/internal/logger"
)

type result struct {
	File    string                 `json:"file"`
	Product *advisor.ProductReport `json:"product"`
	Demand  *advisor.DemandReport  `json:"demand,omitempty"`
}

func analyzeCmd() *cobra.Command {
	var (
		asJSON      bool
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "analyze <product.json>...",
		Short: "Forecast prices and recommend buy, wait or alert",
		Long: `Analyze one or more product files. Each file holds a price history and,
optionally, a demand history for stocking advice.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			results, err := runAnalysis(ctx, newAdvisor(), args, concurrency, cfg.Location())
			if err != nil {
				return err
			}
			if l := openAdviceLog(ctx); l != nil {
				recordAdvice(ctx, l, results)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			printResults(cmd.OutOrStdout(), results)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print reports as JSON")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "products analyzed in parallel")
	return cmd
}

// runAnalysis analyzes every file concurrently. Results keep argument order;
// the first failure cancels the rest.
func runAnalysis(ctx context.Context, adv interfaces.Advisor, paths []string, limit int, loc *time.Location) ([]result, error) {
	results := make([]result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, limit))

	for i, path := range paths {
		g.Go(func() error {
			j, err := readJob(path, loc)
			if err != nil {
				return err
			}
			product, err := adv.AnalyzeProduct(gctx, j.product)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = result{File: path, Product: product}

			if j.demand == nil {
				return nil
			}
			demand, err := adv.AnalyzeDemand(gctx, *j.demand)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i].Demand = demand
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func recordAdvice(ctx context.Context, l *advicelog.Log, results []result) {
	for _, r := range results {
		p := r.Product
		rec := p.Recommendation
		err := l.Append(advicelog.Entry{
			ProductID:          p.ProductID,
			Category:           p.Category,
			Action:             string(rec.Action),
			Rule:               rec.Rule,
			Confidence:         rec.Confidence,
			Price:              rec.Factors.CurrentPrice,
			PredictedBestPrice: rec.PredictedBestPrice,
			DealScore:          p.Deal.Score,
			Reason:             rec.Reasoning,
			Extra:              map[string]any{"file": r.File},
		})
		if err != nil {
			logger.Warn(ctx, "Failed to record advice", "product_id", p.ProductID, "error", err)
		}
	}
}

func writeJSON(w io.Writer, results []result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
