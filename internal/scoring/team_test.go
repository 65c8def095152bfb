package scoring

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwayclub/fantasy-golf/internal/models"
)

func testTournament(name string, start time.Time, status models.TournamentStatus) models.Tournament {
	return models.Tournament{
		ID:        uuid.New(),
		Name:      name,
		StartDate: start,
		EndDate:   start,
		Type:      models.TournamentRollup,
		Season:    start.Year(),
		Status:    status,
	}
}

func testScore(t models.Tournament, golferID uuid.UUID, points int) models.Score {
	return models.Score{
		TournamentID:     t.ID,
		GolferID:         golferID,
		Participated:     true,
		MultipliedPoints: points,
	}
}

func TestTeamGolferScoresWindows(t *testing.T) {
	golfer := models.Golfer{ID: uuid.New(), FirstName: "Tom", LastName: "Bradshaw"}

	seasonStart := date(2026, time.January, 1)
	weekStart := date(2026, time.August, 1)
	weekEnd := date(2026, time.August, 8)
	effectiveStart := date(2026, time.January, 3)

	thisWeek := testTournament("Saturday Rollup", date(2026, time.August, 1), models.TournamentPublished)
	laterThisMonth := testTournament("Medal", date(2026, time.August, 15), models.TournamentComplete)
	earlierThisSeason := testTournament("Spring Cup", date(2026, time.April, 11), models.TournamentComplete)

	tournaments := []models.Tournament{thisWeek, laterThisMonth, earlierThisSeason}
	scores := []models.Score{
		testScore(thisWeek, golfer.ID, 10),
		testScore(laterThisMonth, golfer.ID, 7),
		testScore(earlierThisSeason, golfer.ID, 5),
	}

	result := TeamGolferScores(
		[]models.Golfer{golfer}, tournaments, scores,
		seasonStart, "", weekStart, weekEnd, effectiveStart,
	)
	require.Len(t, result, 1)

	assert.Equal(t, 10, result[0].WeekPoints)
	assert.Equal(t, 17, result[0].MonthPoints) // both August events
	assert.Equal(t, 22, result[0].SeasonPoints)
	assert.Len(t, result[0].WeekBreakdown, 1)
	assert.Len(t, result[0].SeasonBreakdown, 3)
}

func TestTeamGolferScoresCaptainDoubling(t *testing.T) {
	captain := models.Golfer{ID: uuid.New(), FirstName: "Mick", LastName: "O'Donnell"}
	regular := models.Golfer{ID: uuid.New(), FirstName: "Pete", LastName: "Marsh"}

	weekStart := date(2026, time.August, 29)
	weekEnd := date(2026, time.September, 5)
	event := testTournament("Rollup", weekStart, models.TournamentPublished)

	scores := []models.Score{
		testScore(event, captain.ID, 10),
		testScore(event, regular.ID, 10),
	}

	result := TeamGolferScores(
		[]models.Golfer{captain, regular},
		[]models.Tournament{event},
		scores,
		date(2026, time.January, 1),
		captain.ID.String(),
		weekStart, weekEnd,
		date(2026, time.January, 3),
	)
	require.Len(t, result, 2)

	// Sorted by week points descending, so the captain leads
	assert.True(t, result[0].IsCaptain)
	assert.Equal(t, 20, result[0].WeekPoints)
	assert.Equal(t, 10, result[1].WeekPoints)

	totals := SumTeamTotals(result)
	assert.Equal(t, 30, totals.WeekPoints)
	assert.Equal(t, 30, totals.SeasonPoints)
}

func TestTeamGolferScoresEffectiveStartGating(t *testing.T) {
	golfer := models.Golfer{ID: uuid.New(), FirstName: "Harry", LastName: "Whitfield"}

	weekStart := date(2026, time.August, 29)
	weekEnd := date(2026, time.September, 5)

	beforeTeamExisted := testTournament("Spring Cup", date(2026, time.April, 11), models.TournamentComplete)
	afterTeamExisted := testTournament("Rollup", date(2026, time.August, 29), models.TournamentPublished)

	scores := []models.Score{
		testScore(beforeTeamExisted, golfer.ID, 39),
		testScore(afterTeamExisted, golfer.ID, 10),
	}

	// Team created in June: the spring event never counts
	effectiveStart := date(2026, time.June, 6)
	result := TeamGolferScores(
		[]models.Golfer{golfer},
		[]models.Tournament{beforeTeamExisted, afterTeamExisted},
		scores,
		date(2026, time.January, 1),
		"", weekStart, weekEnd, effectiveStart,
	)
	require.Len(t, result, 1)

	assert.Equal(t, 10, result[0].SeasonPoints)
	assert.Len(t, result[0].SeasonBreakdown, 1)
}

func TestTeamGolferScoresIgnoresDraftTournaments(t *testing.T) {
	golfer := models.Golfer{ID: uuid.New(), FirstName: "Dave", LastName: "Cullen"}

	weekStart := date(2026, time.August, 29)
	weekEnd := date(2026, time.September, 5)
	draft := testTournament("Unscored", weekStart, models.TournamentDraft)

	result := TeamGolferScores(
		[]models.Golfer{golfer},
		[]models.Tournament{draft},
		[]models.Score{testScore(draft, golfer.ID, 10)},
		date(2026, time.January, 1),
		"", weekStart, weekEnd, date(2026, time.January, 3),
	)
	require.Len(t, result, 1)
	assert.Zero(t, result[0].WeekPoints)
	assert.Zero(t, result[0].SeasonPoints)
}

func TestTeamWindowPoints(t *testing.T) {
	captain := uuid.New()
	regular := uuid.New()

	augustRollup := testTournament("August Rollup", date(2026, time.August, 29), models.TournamentPublished)
	julyMedal := testTournament("July Medal", date(2026, time.July, 11), models.TournamentComplete)
	tournaments := []models.Tournament{augustRollup, julyMedal}

	scores := []models.Score{
		testScore(augustRollup, captain, 10),
		testScore(augustRollup, regular, 7),
		testScore(julyMedal, captain, 13),
	}

	total := TeamWindowPoints(
		tournaments, scores, captain.String(),
		date(2026, time.August, 29), date(2026, time.September, 5),
		date(2026, time.January, 3),
	)
	assert.Equal(t, 27, total) // captain 10x2 + regular 7

	// Effective start after the window excludes everything
	total = TeamWindowPoints(
		tournaments, scores, captain.String(),
		date(2026, time.August, 29), date(2026, time.September, 5),
		date(2026, time.September, 5),
	)
	assert.Zero(t, total)
}

func historyRow(t *testing.T, ids []string, reason string, changedAt time.Time) models.PickHistory {
	t.Helper()
	snapshot, err := json.Marshal(ids)
	require.NoError(t, err)
	return models.PickHistory{
		GolferIDs: snapshot,
		Reason:    reason,
		ChangedAt: changedAt,
	}
}

func TestTransferHistory(t *testing.T) {
	// Newest first, as fetched
	history := []models.PickHistory{
		historyRow(t, []string{"a", "b", "d"}, "transfer", date(2026, time.March, 10)),
		historyRow(t, []string{"a", "b", "c"}, "initial", date(2026, time.March, 1)),
	}

	entries := TransferHistory(history)
	require.Len(t, entries, 2)

	assert.Equal(t, []string{"d"}, entries[0].Added)
	assert.Equal(t, []string{"c"}, entries[0].Removed)
	assert.Equal(t, "transfer", entries[0].Reason)

	// Oldest entry reports the whole roster as added
	assert.Equal(t, []string{"a", "b", "c"}, entries[1].Added)
	assert.Empty(t, entries[1].Removed)
}

func TestTransferHistoryDropsNoOpRows(t *testing.T) {
	// Captain-only change leaves the roster identical
	history := []models.PickHistory{
		historyRow(t, []string{"a", "b"}, "transfer", date(2026, time.March, 10)),
		historyRow(t, []string{"a", "b"}, "initial", date(2026, time.March, 1)),
	}

	entries := TransferHistory(history)
	require.Len(t, entries, 1)
	assert.Equal(t, "initial", entries[0].Reason)
}

func TestTransferHistoryEmpty(t *testing.T) {
	assert.Empty(t, TransferHistory(nil))
}
