package scoring

import "sort"

// Movement of a leaderboard entry relative to the previous period
type Movement string

const (
	MovementUp   Movement = "up"
	MovementDown Movement = "down"
	MovementSame Movement = "same"
	MovementNew  Movement = "new"
)

// Entry is one user's point total for a period
type Entry struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// RankedEntry is a leaderboard row with its competition rank and, when a
// previous-period snapshot was supplied, its movement against that period.
type RankedEntry struct {
	UserID         uint     `json:"user_id"`
	Username       string   `json:"username"`
	Points         int      `json:"total_points"`
	Rank           int      `json:"rank"`
	Movement       Movement `json:"movement,omitempty"`
	MovementAmount int      `json:"movement_amount,omitempty"`
}

// RankEntries sorts entries by points descending and assigns competition
// ranks: tied entries share a rank and the following distinct value skips
// accordingly, e.g. points [20,15,15,10] rank [1,2,2,4]. With a previous
// snapshot, movement is derived by comparing ranks per user; users absent
// from the snapshot are marked new.
func RankEntries(current []Entry, previous []Entry) []RankedEntry {
	ranked := assignRanks(current)

	if previous == nil {
		return ranked
	}

	previousRanks := make(map[uint]int, len(previous))
	for _, p := range assignRanks(previous) {
		previousRanks[p.UserID] = p.Rank
	}

	for i := range ranked {
		prevRank, ok := previousRanks[ranked[i].UserID]
		if !ok {
			ranked[i].Movement = MovementNew
			continue
		}
		switch {
		case prevRank > ranked[i].Rank:
			ranked[i].Movement = MovementUp
			ranked[i].MovementAmount = prevRank - ranked[i].Rank
		case prevRank < ranked[i].Rank:
			ranked[i].Movement = MovementDown
			ranked[i].MovementAmount = ranked[i].Rank - prevRank
		default:
			ranked[i].Movement = MovementSame
		}
	}
	return ranked
}

func assignRanks(entries []Entry) []RankedEntry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	ranked := make([]RankedEntry, len(sorted))
	for i, e := range sorted {
		rank := i + 1
		if i > 0 && e.Points == sorted[i-1].Points {
			rank = ranked[i-1].Rank
		}
		ranked[i] = RankedEntry{
			UserID:   e.UserID,
			Username: e.Username,
			Points:   e.Points,
			Rank:     rank,
		}
	}
	return ranked
}
