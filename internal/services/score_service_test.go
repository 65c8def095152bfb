package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fairwayclub/fantasy-golf/internal/models"
)

func intPtr(n int) *int { return &n }

func stablefordTournament(multiplier int, isMultiDay bool) *models.Tournament {
	return &models.Tournament{
		ID:            uuid.New(),
		Name:          "Test Event",
		ScoringFormat: models.FormatStableford,
		IsMultiDay:    isMultiDay,
		Multiplier:    multiplier,
		Season:        2026,
	}
}

func TestComputeScoreWinnerWithBonus(t *testing.T) {
	tournament := stablefordTournament(1, false)
	golferID := uuid.New()

	score := ComputeScore(tournament, ScoreInput{
		GolferID:     golferID,
		Participated: true,
		Position:     intPtr(1),
		RawScore:     intPtr(38),
	})

	assert.Equal(t, tournament.ID, score.TournamentID)
	assert.Equal(t, golferID, score.GolferID)
	assert.Equal(t, 10, score.BasePoints)
	assert.Equal(t, 3, score.BonusPoints)
	assert.Equal(t, 13, score.MultipliedPoints)
}

func TestComputeScoreMultiplier(t *testing.T) {
	// (10 + 3) x 3 and (7 + 1) x 2
	score := ComputeScore(stablefordTournament(3, false), ScoreInput{
		Participated: true,
		Position:     intPtr(1),
		RawScore:     intPtr(36),
	})
	assert.Equal(t, 39, score.MultipliedPoints)

	score = ComputeScore(stablefordTournament(2, false), ScoreInput{
		Participated: true,
		Position:     intPtr(2),
		RawScore:     intPtr(33),
	})
	assert.Equal(t, 16, score.MultipliedPoints)
}

func TestComputeScoreNonParticipant(t *testing.T) {
	// Position and raw score are discarded for non-participants
	score := ComputeScore(stablefordTournament(2, false), ScoreInput{
		GolferID:     uuid.New(),
		Participated: false,
		Position:     intPtr(1),
		RawScore:     intPtr(40),
	})

	assert.False(t, score.Participated)
	assert.Nil(t, score.Position)
	assert.Nil(t, score.RawScore)
	assert.Zero(t, score.BasePoints)
	assert.Zero(t, score.BonusPoints)
	assert.Zero(t, score.MultipliedPoints)
}

func TestComputeScoreMedalFormat(t *testing.T) {
	tournament := &models.Tournament{
		ID:            uuid.New(),
		ScoringFormat: models.FormatMedal,
		Multiplier:    1,
	}

	score := ComputeScore(tournament, ScoreInput{
		Participated: true,
		Position:     intPtr(4),
		RawScore:     intPtr(-1), // under par
	})
	assert.Equal(t, 0, score.BasePoints)
	assert.Equal(t, 3, score.BonusPoints)
	assert.Equal(t, 3, score.MultipliedPoints)
}

func TestComputeScoreDefaultsFormatAndMultiplier(t *testing.T) {
	// Unset format reads as stableford, zero multiplier floors at 1
	tournament := &models.Tournament{ID: uuid.New()}

	score := ComputeScore(tournament, ScoreInput{
		Participated: true,
		Position:     intPtr(3),
		RawScore:     intPtr(36),
	})
	assert.Equal(t, 5, score.BasePoints)
	assert.Equal(t, 3, score.BonusPoints)
	assert.Equal(t, 8, score.MultipliedPoints)
}

func TestComputeScoreParticipantWithoutPlacing(t *testing.T) {
	score := ComputeScore(stablefordTournament(1, false), ScoreInput{
		Participated: true,
		Position:     intPtr(9),
		RawScore:     intPtr(28),
	})

	assert.True(t, score.Participated)
	assert.Zero(t, score.MultipliedPoints)
}
