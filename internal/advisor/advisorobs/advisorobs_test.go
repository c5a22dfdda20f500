package advisorobs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-intel/internal/advisor"
	"price-intel/internal/logger"
	"price-intel/internal/recommend"
)

type stubAdvisor struct {
	product *advisor.ProductReport
	demand  *advisor.DemandReport
	err     error
}

func (s *stubAdvisor) AnalyzeProduct(context.Context, advisor.ProductRequest) (*advisor.ProductReport, error) {
	return s.product, s.err
}

func (s *stubAdvisor) AnalyzeDemand(context.Context, advisor.DemandRequest) (*advisor.DemandReport, error) {
	return s.demand, s.err
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, logger.InitWithConfig(logger.LogConfig{Level: "INFO", Format: "json"}, &buf))
	return &buf
}

func TestWrapLogsRecommendation(t *testing.T) {
	buf := captureLogs(t)
	want := &advisor.ProductReport{
		ProductID: "tv-55",
		Category:  "electronics",
		Recommendation: recommend.Recommendation{
			Action:     recommend.Wait,
			Confidence: 0.88,
			Rule:       "festival_ahead",
			Reasoning:  "Big Billion Days is 7 days away",
		},
	}

	got, err := Wrap(&stubAdvisor{product: want}).AnalyzeProduct(context.Background(), advisor.ProductRequest{ProductID: "tv-55"})
	require.NoError(t, err)
	assert.Same(t, want, got)

	out := buf.String()
	assert.Contains(t, out, `"type":"RECOMMENDATION"`)
	assert.Contains(t, out, `"action":"wait"`)
	assert.Contains(t, out, `"rule":"festival_ahead"`)
}

func TestWrapPassesErrorsThrough(t *testing.T) {
	buf := captureLogs(t)
	boom := errors.New("boom")
	wrapped := Wrap(&stubAdvisor{err: boom})

	_, err := wrapped.AnalyzeProduct(context.Background(), advisor.ProductRequest{ProductID: "x"})
	assert.ErrorIs(t, err, boom)
	_, err = wrapped.AnalyzeDemand(context.Background(), advisor.DemandRequest{Category: "toys"})
	assert.ErrorIs(t, err, boom)

	assert.Contains(t, buf.String(), "Product analysis failed")
	assert.Contains(t, buf.String(), "Demand analysis failed")
}

func TestWrapLogsDemandSummary(t *testing.T) {
	buf := captureLogs(t)
	report := &advisor.DemandReport{Category: "toys"}
	report.Insights.Trend = "increasing"

	got, err := Wrap(&stubAdvisor{demand: report}).AnalyzeDemand(context.Background(), advisor.DemandRequest{Category: "toys"})
	require.NoError(t, err)
	assert.Same(t, report, got)
	assert.Contains(t, buf.String(), `"trend":"increasing"`)
}
