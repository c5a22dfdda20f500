package store

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Forecast struct {
		PriceHorizonDays  int    `yaml:"price_horizon_days"`
		DemandHorizonDays int    `yaml:"demand_horizon_days"`
		MaxHorizonDays    int    `yaml:"max_horizon_days"`
		MinHistoryPoints  int    `yaml:"min_history_points"`
		DefaultCategory   string `yaml:"default_category"`
	} `yaml:"forecast"`
	Inventory struct {
		LeadTimeDays int `yaml:"lead_time_days"`
		SafetyDays   int `yaml:"safety_days"`
	} `yaml:"inventory"`
	Timezone  string `yaml:"timezone"`
	AdviceLog struct {
		Enabled       bool   `yaml:"enabled"`
		Dir           string `yaml:"dir"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"advice_log"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Forecast.PriceHorizonDays == 0 {
		c.Forecast.PriceHorizonDays = 30
	}
	if c.Forecast.DemandHorizonDays == 0 {
		c.Forecast.DemandHorizonDays = 30
	}
	if c.Forecast.MaxHorizonDays == 0 {
		c.Forecast.MaxHorizonDays = 365
	}
	if c.Forecast.DefaultCategory == "" {
		c.Forecast.DefaultCategory = "general"
	}
	if c.Inventory.LeadTimeDays == 0 {
		c.Inventory.LeadTimeDays = 7
	}
	if c.Inventory.SafetyDays == 0 {
		c.Inventory.SafetyDays = 3
	}
	if c.Timezone == "" {
		c.Timezone = "Asia/Kolkata"
	}
	if c.AdviceLog.Dir == "" {
		c.AdviceLog.Dir = "logs"
	}
	if c.AdviceLog.RetentionDays == 0 {
		c.AdviceLog.RetentionDays = 7
	}
}

func (c *Config) Validate() error {
	f := c.Forecast
	if f.MaxHorizonDays <= 0 {
		return fmt.Errorf("forecast.max_horizon_days must be positive, got %d", f.MaxHorizonDays)
	}
	if f.PriceHorizonDays <= 0 || f.PriceHorizonDays > f.MaxHorizonDays {
		return fmt.Errorf("forecast.price_horizon_days must be between 1-%d, got %d", f.MaxHorizonDays, f.PriceHorizonDays)
	}
	if f.DemandHorizonDays <= 0 || f.DemandHorizonDays > f.MaxHorizonDays {
		return fmt.Errorf("forecast.demand_horizon_days must be between 1-%d, got %d", f.MaxHorizonDays, f.DemandHorizonDays)
	}
	if f.MinHistoryPoints < 0 {
		return fmt.Errorf("forecast.min_history_points cannot be negative, got %d", f.MinHistoryPoints)
	}
	if c.Inventory.LeadTimeDays < 0 || c.Inventory.SafetyDays < 0 {
		return errors.New("inventory lead_time_days and safety_days cannot be negative")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	return nil
}

// Location resolves Timezone, falling back to a fixed IST offset when the
// zone database is unavailable.
func (c *Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Timezone); err == nil {
		return loc
	}
	return time.FixedZone("IST", 19800)
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()

	if v := os.Getenv("ADVISOR_LOG_DIR"); v != "" {
		c.AdviceLog.Dir = v
	}
	if v := os.Getenv("ADVISOR_LOG_RETENTION_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("ADVISOR_LOG_RETENTION_DAYS: %w", err)
		}
		c.AdviceLog.RetentionDays = days
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
