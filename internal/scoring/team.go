package scoring

import (
	"sort"
	"time"

	"github.com/fairwayclub/fantasy-golf/internal/models"
)

// TournamentScore is one tournament's contribution to a golfer's totals,
// before any captain doubling.
type TournamentScore struct {
	TournamentID   string    `json:"tournament_id"`
	TournamentName string    `json:"tournament_name"`
	Date           time.Time `json:"date"`
	Position       *int      `json:"position"`
	RawScore       *int      `json:"raw_score"`
	Points         int       `json:"points"` // multiplied points
}

// GolferScores is one roster golfer's aggregated view across the three
// standing windows. Captain doubling is already applied to the totals; the
// breakdowns carry the raw per-tournament points.
type GolferScores struct {
	Golfer          models.Golfer     `json:"golfer"`
	IsCaptain       bool              `json:"is_captain"`
	WeekPoints      int               `json:"week_points"`
	MonthPoints     int               `json:"month_points"`
	SeasonPoints    int               `json:"season_points"`
	WeekBreakdown   []TournamentScore `json:"week_breakdown"`
	SeasonBreakdown []TournamentScore `json:"season_breakdown"`
}

// TeamTotals sums a roster's already-captain-multiplied window points
type TeamTotals struct {
	WeekPoints   int `json:"week_points"`
	MonthPoints  int `json:"month_points"`
	SeasonPoints int `json:"season_points"`
}

// TeamGolferScores aggregates score records into per-golfer week/month/season
// totals. Pure over its inputs: the caller fetches golfers, the published or
// complete tournaments of the season, and the score records. Scores whose
// tournament predates teamEffectiveStart are excluded from every window. The
// month window is the calendar month containing the last day of the requested
// week. The result is sorted by week points descending, ties keeping roster
// order.
func TeamGolferScores(
	golfers []models.Golfer,
	tournaments []models.Tournament,
	scores []models.Score,
	seasonStart time.Time,
	captainID string,
	weekStart, weekEnd time.Time,
	teamEffectiveStart time.Time,
) []GolferScores {
	tournamentsByID := make(map[string]*models.Tournament, len(tournaments))
	for i := range tournaments {
		if tournaments[i].IsScored() {
			tournamentsByID[tournaments[i].ID.String()] = &tournaments[i]
		}
	}

	scoresByGolfer := make(map[string][]models.Score, len(golfers))
	for _, s := range scores {
		key := s.GolferID.String()
		scoresByGolfer[key] = append(scoresByGolfer[key], s)
	}

	monthStart, monthEnd := MonthBounds(weekEnd.AddDate(0, 0, -1))
	weekFloor := maxTime(weekStart, teamEffectiveStart)
	monthFloor := maxTime(monthStart, teamEffectiveStart)
	seasonFloor := SeasonWindowFloor(seasonStart, teamEffectiveStart)

	result := make([]GolferScores, 0, len(golfers))
	for _, golfer := range golfers {
		entry := GolferScores{
			Golfer:    golfer,
			IsCaptain: golfer.ID.String() == captainID,
		}

		var lines []TournamentScore
		for _, s := range scoresByGolfer[golfer.ID.String()] {
			t, ok := tournamentsByID[s.TournamentID.String()]
			if !ok {
				continue
			}
			lines = append(lines, TournamentScore{
				TournamentID:   t.ID.String(),
				TournamentName: t.Name,
				Date:           t.StartDate,
				Position:       s.Position,
				RawScore:       s.RawScore,
				Points:         s.MultipliedPoints,
			})
		}
		sort.SliceStable(lines, func(i, j int) bool {
			return lines[i].Date.After(lines[j].Date)
		})

		for _, line := range lines {
			if inWindow(line.Date, weekFloor, weekEnd) {
				entry.WeekPoints += line.Points
				entry.WeekBreakdown = append(entry.WeekBreakdown, line)
			}
			if inWindow(line.Date, monthFloor, monthEnd) {
				entry.MonthPoints += line.Points
			}
			if !line.Date.Before(seasonFloor) {
				entry.SeasonPoints += line.Points
				entry.SeasonBreakdown = append(entry.SeasonBreakdown, line)
			}
		}

		// Captain doubling applies to each window's sum; equivalent to
		// doubling each contributing score.
		if entry.IsCaptain {
			entry.WeekPoints *= 2
			entry.MonthPoints *= 2
			entry.SeasonPoints *= 2
		}

		result = append(result, entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].WeekPoints > result[j].WeekPoints
	})
	return result
}

// SumTeamTotals folds per-golfer windows into team totals
func SumTeamTotals(golferScores []GolferScores) TeamTotals {
	var totals TeamTotals
	for _, g := range golferScores {
		totals.WeekPoints += g.WeekPoints
		totals.MonthPoints += g.MonthPoints
		totals.SeasonPoints += g.SeasonPoints
	}
	return totals
}

// TeamWindowPoints sums a roster's multiplied points for scores whose
// tournament falls in [lower, upper), floored at the team's effective start,
// with the captain's scores counted double. Tournaments outside the provided
// set (e.g. drafts) contribute nothing.
func TeamWindowPoints(
	tournaments []models.Tournament,
	scores []models.Score,
	captainID string,
	lower, upper, effectiveStart time.Time,
) int {
	tournamentsByID := make(map[string]*models.Tournament, len(tournaments))
	for i := range tournaments {
		if tournaments[i].IsScored() {
			tournamentsByID[tournaments[i].ID.String()] = &tournaments[i]
		}
	}

	floor := maxTime(lower, effectiveStart)
	total := 0
	for _, s := range scores {
		t, ok := tournamentsByID[s.TournamentID.String()]
		if !ok || !inWindow(t.StartDate, floor, upper) {
			continue
		}
		points := s.MultipliedPoints
		if s.GolferID.String() == captainID {
			points *= 2
		}
		total += points
	}
	return total
}

// TransferEntry is one derived transfer-history row
type TransferEntry struct {
	ChangedAt  time.Time `json:"changed_at"`
	Reason     string    `json:"reason"`
	Added      []string  `json:"added"`
	Removed    []string  `json:"removed"`
	TotalSpent int64     `json:"total_spent"`
}

// TransferHistory derives added/removed golfer sets from pick history ordered
// newest first: each entry diffs against the next older snapshot; the oldest
// entry reports the whole roster as added. No-op rows (captain-only changes)
// are dropped.
func TransferHistory(history []models.PickHistory) []TransferEntry {
	entries := make([]TransferEntry, 0, len(history))
	for i := range history {
		current := history[i].GolferIDList()
		var older []string
		if i+1 < len(history) {
			older = history[i+1].GolferIDList()
		}

		entry := TransferEntry{
			ChangedAt:  history[i].ChangedAt,
			Reason:     history[i].Reason,
			Added:      diffIDs(current, older),
			TotalSpent: history[i].TotalSpent,
		}
		if i+1 < len(history) {
			entry.Removed = diffIDs(older, current)
		}

		if len(entry.Added) == 0 && len(entry.Removed) == 0 {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// diffIDs returns the ids present in a but not in b
func diffIDs(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}
	var out []string
	for _, id := range a {
		if !inB[id] {
			out = append(out, id)
		}
	}
	return out
}
