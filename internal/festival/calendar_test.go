package festival

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFestivalsForYear(t *testing.T) {
	fs := FestivalsForYear(2025)
	require.Len(t, fs, 16)
	assert.Equal(t, "new-year-sale", fs[0].ID)
	assert.Equal(t, "christmas", fs[len(fs)-1].ID)

	for i := 1; i < len(fs); i++ {
		assert.False(t, fs[i].Date.Before(fs[i-1].Date), "catalog out of date order at %s", fs[i].ID)
	}

	diwali := fs[13]
	assert.Equal(t, "diwali", diwali.ID)
	assert.Equal(t, date(2025, time.November, 1), diwali.Date)
	assert.Equal(t, date(2026, time.November, 1), FestivalsForYear(2026)[13].Date)
}

func TestFestivalsForYearReturnsFreshCopies(t *testing.T) {
	a := FestivalsForYear(2025)
	a[0].Categories[0] = "mutated"
	b := FestivalsForYear(2025)
	assert.Equal(t, "electronics", b[0].Categories[0])
}

func TestWindowContains(t *testing.T) {
	diwali := FestivalsForYear(2025)[13]
	assert.True(t, diwali.Contains(date(2025, time.October, 22)))
	assert.False(t, diwali.Contains(date(2025, time.October, 21)))
	assert.True(t, diwali.Contains(date(2025, time.November, 4)))
	assert.False(t, diwali.Contains(date(2025, time.November, 5)))
	assert.Equal(t, date(2025, time.October, 22), diwali.WindowStart())
	assert.Equal(t, date(2025, time.November, 4), diwali.WindowEnd())
}

func TestUpcomingImpactPicksHighestDiscount(t *testing.T) {
	impact := UpcomingImpact("electronics", date(2025, time.October, 1))
	require.NotNil(t, impact)

	assert.Equal(t, "big-billion-days", impact.Festival.ID)
	assert.Equal(t, 60.0, impact.ExpectedDiscount)
	assert.Equal(t, 7, impact.DaysUntil)
	assert.InDelta(t, 1-7.0/60, impact.Confidence, 1e-9)
	assert.Equal(t, date(2025, time.October, 5), impact.BestBuyWindow.Start)
	assert.Equal(t, date(2025, time.October, 10), impact.BestBuyWindow.End)
}

func TestUpcomingImpactConfidenceFloor(t *testing.T) {
	impact := UpcomingImpact("jewelry", date(2025, time.February, 20))
	require.NotNil(t, impact)
	assert.Equal(t, "eid-ul-fitr", impact.Festival.ID)
	assert.Equal(t, 49, impact.DaysUntil)
	assert.Equal(t, 0.6, impact.Confidence)
}

func TestUpcomingImpactNoneWithinWindow(t *testing.T) {
	assert.Nil(t, UpcomingImpact("books", date(2025, time.February, 20)))
}

func TestUpcomingImpactCrossesYearBoundary(t *testing.T) {
	impact := UpcomingImpact("electronics", date(2025, time.December, 20))
	require.NotNil(t, impact)
	assert.Equal(t, "republic-day-sale", impact.Festival.ID)
	assert.Equal(t, 37, impact.DaysUntil)
	assert.Equal(t, 2026, impact.Festival.Date.Year())
}

func TestAdjustedPrice(t *testing.T) {
	assert.InDelta(t, 500, AdjustedPrice(1000, date(2025, time.November, 1), "fashion"), 1e-9)
	assert.Equal(t, 1000.0, AdjustedPrice(1000, date(2025, time.June, 1), "fashion"))
}

func TestActiveAtFindsNextYearsWindow(t *testing.T) {
	f, ok := ActiveAt(date(2025, time.December, 30), "electronics")
	require.True(t, ok)
	assert.Equal(t, "new-year-sale", f.ID)
	assert.Equal(t, 2026, f.Date.Year())
}

func TestInMonthHonoursCatchAll(t *testing.T) {
	assert.Equal(t,
		[]string{"Big Billion Days", "Dussehra", "Dhanteras"},
		InMonth(time.October, "fashion"))
	assert.Empty(t, InMonth(time.June, "fashion"))
}
