package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	c, err := LoadConfig(writeConfig(t, "timezone: Asia/Kolkata\n"))
	require.NoError(t, err)

	assert.Equal(t, 30, c.Forecast.PriceHorizonDays)
	assert.Equal(t, 30, c.Forecast.DemandHorizonDays)
	assert.Equal(t, 365, c.Forecast.MaxHorizonDays)
	assert.Equal(t, "general", c.Forecast.DefaultCategory)
	assert.Equal(t, 7, c.Inventory.LeadTimeDays)
	assert.Equal(t, 3, c.Inventory.SafetyDays)
	assert.Equal(t, "logs", c.AdviceLog.Dir)
	assert.False(t, c.AdviceLog.Enabled)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ADVISOR_LOG_DIR", "/tmp/advice")
	t.Setenv("ADVISOR_LOG_RETENTION_DAYS", "14")

	c, err := LoadConfig(writeConfig(t, `
forecast:
  price_horizon_days: 14
  default_category: electronics
advice_log:
  enabled: true
  dir: ignored
`))
	require.NoError(t, err)
	assert.Equal(t, 14, c.Forecast.PriceHorizonDays)
	assert.Equal(t, "electronics", c.Forecast.DefaultCategory)
	assert.True(t, c.AdviceLog.Enabled)
	assert.Equal(t, "/tmp/advice", c.AdviceLog.Dir)
	assert.Equal(t, 14, c.AdviceLog.RetentionDays)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"horizon above cap", "forecast:\n  price_horizon_days: 400\n"},
		{"negative demand horizon", "forecast:\n  demand_horizon_days: -1\n"},
		{"negative lead time", "inventory:\n  lead_time_days: -2\n"},
		{"unknown timezone", "timezone: Mars/Olympus\n"},
		{"bad yaml", "forecast: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultsValidate(t *testing.T) {
	c := Defaults()
	require.NoError(t, c.Validate())
	assert.Equal(t, "Asia/Kolkata", c.Location().String())
}
