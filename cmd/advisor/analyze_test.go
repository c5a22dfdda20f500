package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-intel/internal/advicelog"
	"price-intel/internal/advisor"
	"price-intel/internal/recommend"
)

var ist = time.FixedZone("IST", 19800)

const tvFile = `{
  "product_id": "tv-55",
  "name": "55in TV",
  "category": "electronics",
  "price_history": [
    {"date": "2025-09-27", "price": 1000},
    {"date": "2025-09-28", "price": 1010},
    {"date": "2025-09-29", "price": 1020},
    {"date": "2025-09-30T00:00:00+05:30", "price": 1030}
  ],
  "demand_history": [
    {"date": "2025-09-29", "demand": 40},
    {"date": "2025-09-30", "demand": 44, "category": "tv"}
  ],
  "lead_time_days": 5
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func testAdvisor() *advisor.Advisor {
	return advisor.New(nil, advisor.WithClock(func() time.Time {
		return time.Date(2025, time.October, 1, 9, 0, 0, 0, ist)
	}))
}

func TestParseJob(t *testing.T) {
	j, err := parseJob("data/tv.json", []byte(tvFile), ist)
	require.NoError(t, err)

	assert.Equal(t, "tv-55", j.product.ProductID)
	require.Len(t, j.product.PriceHistory, 4)
	assert.Equal(t, time.Date(2025, time.September, 27, 0, 0, 0, 0, ist), j.product.PriceHistory[0].Date)
	assert.True(t, j.product.PriceHistory[3].Date.Equal(time.Date(2025, time.September, 30, 0, 0, 0, 0, ist)))

	require.NotNil(t, j.demand)
	assert.Equal(t, 5, j.demand.LeadTimeDays)
	assert.Equal(t, "electronics", j.demand.History[0].Category)
	assert.Equal(t, "tv", j.demand.History[1].Category)
}

func TestParseJobDefaultsIDToFileName(t *testing.T) {
	j, err := parseJob("data/kettle.json", []byte(`{"price_history": []}`), ist)
	require.NoError(t, err)
	assert.Equal(t, "kettle", j.product.ProductID)
	assert.Nil(t, j.demand)
}

func TestParseJobRejectsBadDates(t *testing.T) {
	_, err := parseJob("x.json", []byte(`{"price_history": [{"date": "27/09/2025", "price": 1}]}`), ist)
	assert.ErrorContains(t, err, "price_history[0]")
}

func TestRunAnalysisKeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "tv.json", tvFile),
		writeFile(t, dir, "book.json", `{"category": "books", "price_history": [{"date": "2025-09-30", "price": 499}]}`),
	}

	results, err := runAnalysis(context.Background(), testAdvisor(), paths, 2, ist)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "tv-55", results[0].Product.ProductID)
	assert.Equal(t, recommend.Wait, results[0].Product.Recommendation.Action)
	require.NotNil(t, results[0].Demand)
	assert.Equal(t, 5, results[0].Demand.Inventory.LeadTimeDays)

	assert.Equal(t, "book", results[1].Product.ProductID)
	assert.Nil(t, results[1].Demand)
}

func TestRunAnalysisFailsFast(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "ok.json", tvFile),
		writeFile(t, dir, "bad.json", `{"horizon_days": 9999, "price_history": []}`),
	}
	_, err := runAnalysis(context.Background(), testAdvisor(), paths, 1, ist)
	assert.ErrorIs(t, err, advisor.ErrInvalidRequest)
	assert.ErrorContains(t, err, "bad.json")

	_, err = runAnalysis(context.Background(), testAdvisor(), []string{filepath.Join(dir, "missing.json")}, 1, ist)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOutputs(t *testing.T) {
	dir := t.TempDir()
	results, err := runAnalysis(context.Background(), testAdvisor(), []string{writeFile(t, dir, "tv.json", tvFile)}, 1, ist)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, results))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Contains(t, decoded[0], "product")
	assert.Contains(t, decoded[0], "demand")

	buf.Reset()
	printResults(&buf, results)
	out := buf.String()
	assert.Contains(t, out, "55in TV (electronics)")
	assert.Contains(t, out, "WAIT")
	assert.Contains(t, out, "₹1,030.00")
	assert.Contains(t, out, "Demand outlook: electronics")
}

func TestRecordAdvice(t *testing.T) {
	dir := t.TempDir()
	results, err := runAnalysis(context.Background(), testAdvisor(), []string{writeFile(t, dir, "tv.json", tvFile)}, 1, ist)
	require.NoError(t, err)

	logDir := t.TempDir()
	recordAdvice(context.Background(), advicelog.New(logDir, ist), results)

	files, err := filepath.Glob(filepath.Join(logDir, "advice", "*.txt"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	b, err := os.ReadFile(files[0])
	require.NoError(t, err)

	var e advicelog.Entry
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &e))
	assert.Equal(t, "tv-55", e.ProductID)
	assert.Equal(t, "wait", e.Action)
	assert.Equal(t, 1030.0, e.Price)
}

func TestPrintFestivals(t *testing.T) {
	var buf bytes.Buffer
	printFestivals(&buf, "electronics", time.Date(2025, time.October, 1, 0, 0, 0, 0, ist), 60)
	out := buf.String()
	assert.Contains(t, out, "★ Big Billion Days")
	assert.Contains(t, out, "Diwali")
	assert.NotContains(t, out, "Christmas")

	buf.Reset()
	printFestivals(&buf, "books", time.Date(2025, time.February, 20, 0, 0, 0, 0, ist), 10)
	assert.Contains(t, buf.String(), "No festival sales ahead.")
}
