package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"price-intel/internal/advisor"
	"price-intel/internal/types"
)

// productFile is the on-disk shape of one product. Dates accept either
// 2006-01-02 (read in the configured zone) or RFC 3339.
type productFile struct {
	ProductID     string        `json:"product_id"`
	Name          string        `json:"name"`
	Category      string        `json:"category"`
	CurrentPrice  float64       `json:"current_price"`
	HorizonDays   int           `json:"horizon_days"`
	PriceHistory  []pointRecord `json:"price_history"`
	DemandHistory []pointRecord `json:"demand_history"`
	LeadTimeDays  int           `json:"lead_time_days"`
	SafetyDays    int           `json:"safety_days"`
}

type pointRecord struct {
	Date     string  `json:"date"`
	Price    float64 `json:"price"`
	Demand   float64 `json:"demand"`
	Category string  `json:"category"`
}

type job struct {
	file    string
	product advisor.ProductRequest
	demand  *advisor.DemandRequest
}

func readJob(path string, loc *time.Location) (job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return job{}, err
	}
	return parseJob(path, b, loc)
}

func parseJob(path string, b []byte, loc *time.Location) (job, error) {
	var pf productFile
	if err := json.Unmarshal(b, &pf); err != nil {
		return job{}, fmt.Errorf("%s: %w", path, err)
	}

	id := pf.ProductID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	j := job{
		file: path,
		product: advisor.ProductRequest{
			ProductID:    id,
			Name:         pf.Name,
			Category:     pf.Category,
			CurrentPrice: pf.CurrentPrice,
			HorizonDays:  pf.HorizonDays,
			PriceHistory: make([]types.PricePoint, 0, len(pf.PriceHistory)),
		},
	}
	for i, r := range pf.PriceHistory {
		d, err := parseDate(r.Date, loc)
		if err != nil {
			return job{}, fmt.Errorf("%s: price_history[%d]: %w", path, i, err)
		}
		j.product.PriceHistory = append(j.product.PriceHistory, types.PricePoint{Date: d, Price: r.Price})
	}

	if len(pf.DemandHistory) == 0 {
		return j, nil
	}
	j.demand = &advisor.DemandRequest{
		Category:     pf.Category,
		LeadTimeDays: pf.LeadTimeDays,
		SafetyDays:   pf.SafetyDays,
		History:      make([]types.DemandPoint, 0, len(pf.DemandHistory)),
	}
	for i, r := range pf.DemandHistory {
		d, err := parseDate(r.Date, loc)
		if err != nil {
			return job{}, fmt.Errorf("%s: demand_history[%d]: %w", path, i, err)
		}
		category := r.Category
		if category == "" {
			category = pf.Category
		}
		j.demand.History = append(j.demand.History, types.DemandPoint{Date: d, Demand: r.Demand, Category: category})
	}
	return j, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q", s)
	}
	return t, nil
}
