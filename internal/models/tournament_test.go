package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTypeDefaults(t *testing.T) {
	tests := []struct {
		tournamentType TournamentType
		wantMultiplier int
		wantMultiDay   bool
	}{
		{TournamentRollup, 1, false},
		{TournamentWeekdayMedal, 1, false},
		{TournamentWeekendMedal, 1, false},
		{TournamentPresidentsCup, 2, false},
		{TournamentFounders, 2, false},
		{TournamentClubChampionship, 2, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.tournamentType), func(t *testing.T) {
			multiplier, isMultiDay := TypeDefaults(tt.tournamentType)
			assert.Equal(t, tt.wantMultiplier, multiplier)
			assert.Equal(t, tt.wantMultiDay, isMultiDay)
		})
	}
}

func TestEffectiveScoringFormat(t *testing.T) {
	tournament := Tournament{}
	assert.Equal(t, FormatStableford, tournament.EffectiveScoringFormat())

	tournament.ScoringFormat = FormatMedal
	assert.Equal(t, FormatMedal, tournament.EffectiveScoringFormat())
}

func TestEffectiveMultiplier(t *testing.T) {
	tournament := Tournament{Multiplier: 0}
	assert.Equal(t, 1, tournament.EffectiveMultiplier())

	tournament.Multiplier = 3
	assert.Equal(t, 3, tournament.EffectiveMultiplier())
}

func TestAddParticipant(t *testing.T) {
	tournament := Tournament{}
	golferID := uuid.New()

	assert.True(t, tournament.AddParticipant(golferID))
	assert.False(t, tournament.AddParticipant(golferID), "duplicate should not change the set")
	assert.Len(t, tournament.ParticipatingGolferIDs, 1)
	assert.Equal(t, TierSmall, tournament.GolferCountTier)
}

func TestDeriveGolferCountTier(t *testing.T) {
	assert.Equal(t, TierSmall, DeriveGolferCountTier(0))
	assert.Equal(t, TierSmall, DeriveGolferCountTier(9))
	assert.Equal(t, TierMedium, DeriveGolferCountTier(10))
	assert.Equal(t, TierMedium, DeriveGolferCountTier(19))
	assert.Equal(t, TierLarge, DeriveGolferCountTier(20))
	assert.Equal(t, TierLarge, DeriveGolferCountTier(35))
}
