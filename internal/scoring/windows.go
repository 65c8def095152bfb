package scoring

import "time"

// Gameweeks run Saturday through Friday. All boundaries are UTC midnights.

// DateOf truncates a time to its UTC date
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FirstSaturdayOnOrAfter returns the first gameweek boundary on or after t
func FirstSaturdayOnOrAfter(t time.Time) time.Time {
	d := DateOf(t)
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// WeekBounds returns the current gameweek window [start, end): the most
// recent Saturday through the following Saturday.
func WeekBounds(now time.Time) (time.Time, time.Time) {
	d := DateOf(now)
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, -1)
	}
	return d, d.AddDate(0, 0, 7)
}

// MonthBounds returns the calendar month window [start, end) containing t
func MonthBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// TeamEffectiveStart is the date from which a team earns points: the pick's
// creation date snapped forward to the next gameweek boundary. A team never
// earns points from tournaments played before it existed.
func TeamEffectiveStart(pickCreatedAt time.Time) time.Time {
	return FirstSaturdayOnOrAfter(pickCreatedAt)
}

// SeasonWindowFloor bounds season totals below by the season's first gameweek
// and the team's effective start, whichever is later.
func SeasonWindowFloor(seasonStart, teamEffectiveStart time.Time) time.Time {
	return maxTime(FirstSaturdayOnOrAfter(seasonStart), teamEffectiveStart)
}

func maxTime(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func inWindow(t, lower, upper time.Time) bool {
	return !t.Before(lower) && t.Before(upper)
}
