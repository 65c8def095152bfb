package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFirstSaturdayOnOrAfter(t *testing.T) {
	// 2026-08-29 is a Saturday
	assert.Equal(t, date(2026, time.August, 29), FirstSaturdayOnOrAfter(date(2026, time.August, 29)))
	assert.Equal(t, date(2026, time.August, 29), FirstSaturdayOnOrAfter(date(2026, time.August, 24)))
	assert.Equal(t, date(2026, time.September, 5), FirstSaturdayOnOrAfter(date(2026, time.August, 30)))

	// time of day is irrelevant
	assert.Equal(t, date(2026, time.August, 29),
		FirstSaturdayOnOrAfter(time.Date(2026, time.August, 29, 23, 59, 0, 0, time.UTC)))
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			"saturday starts its own week",
			date(2026, time.August, 29),
			date(2026, time.August, 29),
			date(2026, time.September, 5),
		},
		{
			"midweek belongs to the previous saturday",
			date(2026, time.September, 2),
			date(2026, time.August, 29),
			date(2026, time.September, 5),
		},
		{
			"friday is the last day of the week",
			date(2026, time.September, 4),
			date(2026, time.August, 29),
			date(2026, time.September, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(date(2026, time.August, 15))
	assert.Equal(t, date(2026, time.August, 1), start)
	assert.Equal(t, date(2026, time.September, 1), end)

	start, end = MonthBounds(date(2026, time.December, 31))
	assert.Equal(t, date(2026, time.December, 1), start)
	assert.Equal(t, date(2027, time.January, 1), end)
}

func TestTeamEffectiveStart(t *testing.T) {
	// A team created midweek starts earning from the next saturday
	assert.Equal(t, date(2026, time.September, 5), TeamEffectiveStart(date(2026, time.August, 31)))
	// A team created on saturday earns from that same day
	assert.Equal(t, date(2026, time.August, 29), TeamEffectiveStart(date(2026, time.August, 29)))
}

func TestSeasonWindowFloor(t *testing.T) {
	seasonStart := date(2026, time.January, 1) // thursday; first gameweek is Jan 3
	firstGameweek := date(2026, time.January, 3)

	// Team created before the season floors at the season's first gameweek
	assert.Equal(t, firstGameweek, SeasonWindowFloor(seasonStart, date(2025, time.December, 20)))

	// Team created mid-season floors at its own effective start
	lateStart := date(2026, time.June, 6)
	assert.Equal(t, lateStart, SeasonWindowFloor(seasonStart, lateStart))
}
