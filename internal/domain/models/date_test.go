package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEffectiveDate(t *testing.T) {
	d, err := ParseEffectiveDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, EffectiveDate{Year: 2024, Month: time.February, Day: 29}, d)
	assert.Equal(t, "2024-02-29", d.String())
	assert.Equal(t, EffectiveDate{Year: 2024, Month: time.March, Day: 1}, d.AddDays(1))

	_, err = ParseEffectiveDate("02/29/2024")
	assert.Error(t, err)
}

func TestReportWindowIsHalfOpen(t *testing.T) {
	d := EffectiveDate{Year: 2024, Month: time.June, Day: 15}
	w := d.Window(time.UTC)

	assert.True(t, w.Contains(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2024, time.June, 15, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, time.June, 14, 23, 59, 59, 0, time.UTC)))
}

func TestDateRangeWindow(t *testing.T) {
	start := EffectiveDate{Year: 2024, Month: time.June, Day: 1}
	end := EffectiveDate{Year: 2024, Month: time.June, Day: 7}
	w := DateRangeWindow(start, end, time.UTC)

	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, time.June, 8, 0, 0, 0, 0, time.UTC), w.End)
	assert.True(t, start.Before(end))
	assert.False(t, end.Before(start))
}

func TestCatalogRowSeason(t *testing.T) {
	start := time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC)

	item := CatalogRow{Name: "Peppermint Mocha", SeasonalStart: &start, SeasonalEnd: &end}.MenuItem()
	require.NotNil(t, item.Season)
	assert.Equal(t, MonthDay{Month: time.November, Day: 1}, item.Season.Start)
	assert.Equal(t, MonthDay{Month: time.February, Day: 28}, item.Season.End)

	assert.Nil(t, CatalogRow{Name: "Drip", SeasonalStart: &start}.MenuItem().Season)
}
