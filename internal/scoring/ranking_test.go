package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankEntriesCompetitionRanking(t *testing.T) {
	current := []Entry{
		{UserID: 1, Username: "alice", Points: 20},
		{UserID: 2, Username: "bob", Points: 15},
		{UserID: 3, Username: "carol", Points: 15},
		{UserID: 4, Username: "dan", Points: 10},
	}

	ranked := RankEntries(current, nil)
	require.Len(t, ranked, 4)

	// Tied entries share a rank and the next distinct value skips
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, 2, ranked[2].Rank)
	assert.Equal(t, 4, ranked[3].Rank)
}

func TestRankEntriesSortsByPointsDescending(t *testing.T) {
	current := []Entry{
		{UserID: 1, Username: "alice", Points: 5},
		{UserID: 2, Username: "bob", Points: 30},
		{UserID: 3, Username: "carol", Points: 12},
	}

	ranked := RankEntries(current, nil)
	require.Len(t, ranked, 3)
	assert.Equal(t, "bob", ranked[0].Username)
	assert.Equal(t, "carol", ranked[1].Username)
	assert.Equal(t, "alice", ranked[2].Username)
}

func TestRankEntriesTiesKeepInputOrder(t *testing.T) {
	current := []Entry{
		{UserID: 1, Username: "alice", Points: 15},
		{UserID: 2, Username: "bob", Points: 15},
	}

	ranked := RankEntries(current, nil)
	require.Len(t, ranked, 2)
	assert.Equal(t, "alice", ranked[0].Username)
	assert.Equal(t, "bob", ranked[1].Username)
}

func TestRankEntriesMovement(t *testing.T) {
	previous := []Entry{
		{UserID: 1, Points: 30}, // rank 1
		{UserID: 2, Points: 20}, // rank 2
		{UserID: 3, Points: 10}, // rank 3
	}
	current := []Entry{
		{UserID: 2, Points: 40}, // rank 1, was 2
		{UserID: 1, Points: 30}, // rank 2, was 1
		{UserID: 3, Points: 10}, // rank 3, was 3
		{UserID: 4, Points: 5},  // rank 4, new
	}

	ranked := RankEntries(current, previous)
	require.Len(t, ranked, 4)

	byUser := make(map[uint]RankedEntry)
	for _, r := range ranked {
		byUser[r.UserID] = r
	}

	assert.Equal(t, MovementUp, byUser[2].Movement)
	assert.Equal(t, 1, byUser[2].MovementAmount)
	assert.Equal(t, MovementDown, byUser[1].Movement)
	assert.Equal(t, 1, byUser[1].MovementAmount)
	assert.Equal(t, MovementSame, byUser[3].Movement)
	assert.Equal(t, 0, byUser[3].MovementAmount)
	assert.Equal(t, MovementNew, byUser[4].Movement)
}

func TestRankEntriesNoSnapshotLeavesMovementEmpty(t *testing.T) {
	ranked := RankEntries([]Entry{{UserID: 1, Points: 10}}, nil)
	require.Len(t, ranked, 1)
	assert.Empty(t, ranked[0].Movement)
}

func TestRankEntriesEmptyInput(t *testing.T) {
	assert.Empty(t, RankEntries(nil, nil))
	assert.Empty(t, RankEntries([]Entry{}, []Entry{{UserID: 1, Points: 5}}))
}
