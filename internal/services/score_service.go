package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fairwayclub/fantasy-golf/internal/models"
	"github.com/fairwayclub/fantasy-golf/internal/scoring"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
)

// ScoreInput is one golfer's raw result for a tournament
type ScoreInput struct {
	GolferID     uuid.UUID `json:"golfer_id"`
	Participated bool      `json:"participated"`
	Position     *int      `json:"position"`
	RawScore     *int      `json:"raw_score"`
}

// ScoreService converts raw tournament results into fantasy-point records.
// Records are upserted by (tournament, golfer); every mutation invalidates the
// season's leaderboard caches and signals connected clients.
type ScoreService struct {
	db     *database.DB
	cache  *CacheService
	hub    *Hub
	logger *logrus.Logger
}

func NewScoreService(db *database.DB, cache *CacheService, hub *Hub, logger *logrus.Logger) *ScoreService {
	return &ScoreService{
		db:     db,
		cache:  cache,
		hub:    hub,
		logger: logger,
	}
}

// ComputeScore derives the point fields of a score record from raw inputs and
// the tournament's scoring configuration. A non-participant scores nothing
// and stores null position and raw score regardless of caller input.
func ComputeScore(t *models.Tournament, in ScoreInput) models.Score {
	score := models.Score{
		TournamentID: t.ID,
		GolferID:     in.GolferID,
		Participated: in.Participated,
	}
	if !in.Participated {
		return score
	}

	score.Position = in.Position
	score.RawScore = in.RawScore
	score.BasePoints = scoring.BasePoints(in.Position)
	score.BonusPoints = scoring.BonusPoints(in.RawScore, t.EffectiveScoringFormat(), t.IsMultiDay)
	score.MultipliedPoints = (score.BasePoints + score.BonusPoints) * t.EffectiveMultiplier()
	return score
}

// EnterScore computes and upserts one score record
func (s *ScoreService) EnterScore(ctx context.Context, tournamentID uuid.UUID, in ScoreInput) (*models.Score, error) {
	records, err := s.BulkEnterScores(ctx, tournamentID, []ScoreInput{in})
	if err != nil {
		return nil, err
	}
	return &records[0], nil
}

// BulkEnterScores computes and upserts score records for many golfers with a
// single tournament fetch. A missing tournament fails the whole batch before
// any write.
func (s *ScoreService) BulkEnterScores(ctx context.Context, tournamentID uuid.UUID, inputs []ScoreInput) ([]models.Score, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	var tournament models.Tournament
	if err := s.db.WithContext(ctx).First(&tournament, "id = ?", tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to fetch tournament: %w", err)
	}

	golferIDs := make([]uuid.UUID, len(inputs))
	for i, in := range inputs {
		golferIDs[i] = in.GolferID
	}
	var golferCount int64
	if err := s.db.WithContext(ctx).Model(&models.Golfer{}).Where("id IN ?", golferIDs).Count(&golferCount).Error; err != nil {
		return nil, fmt.Errorf("failed to verify golfers: %w", err)
	}
	if int(golferCount) != len(uniqueIDs(golferIDs)) {
		return nil, ErrGolferNotFound
	}

	records := make([]models.Score, len(inputs))
	for i, in := range inputs {
		records[i] = ComputeScore(&tournament, in)
		tournament.AddParticipant(in.GolferID)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tournament_id"}, {Name: "golfer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"participated", "position", "raw_score",
				"base_points", "bonus_points", "multiplied_points", "updated_at",
			}),
		}).Create(&records).Error; err != nil {
			return err
		}

		return tx.Model(&tournament).Updates(map[string]interface{}{
			"participating_golfer_ids": tournament.ParticipatingGolferIDs,
			"golfer_count_tier":        tournament.GolferCountTier,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save scores: %w", err)
	}

	s.afterScoreMutation(ctx, &tournament, len(records))
	return records, nil
}

// RecalculateTournament reapplies the tournament's current scoring
// configuration to the stored raw inputs of every existing score and writes
// the batch in one transaction. Returns the number of records updated; zero
// when the tournament has no scores.
func (s *ScoreService) RecalculateTournament(ctx context.Context, tournamentID uuid.UUID) (int, error) {
	var tournament models.Tournament
	if err := s.db.WithContext(ctx).First(&tournament, "id = ?", tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrTournamentNotFound
		}
		return 0, fmt.Errorf("failed to fetch tournament: %w", err)
	}

	var scores []models.Score
	if err := s.db.WithContext(ctx).Where("tournament_id = ?", tournamentID).Find(&scores).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch scores: %w", err)
	}
	if len(scores) == 0 {
		return 0, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range scores {
			recomputed := ComputeScore(&tournament, ScoreInput{
				GolferID:     scores[i].GolferID,
				Participated: scores[i].Participated,
				Position:     scores[i].Position,
				RawScore:     scores[i].RawScore,
			})
			scores[i].BasePoints = recomputed.BasePoints
			scores[i].BonusPoints = recomputed.BonusPoints
			scores[i].MultipliedPoints = recomputed.MultipliedPoints

			if err := tx.Model(&models.Score{}).Where("id = ?", scores[i].ID).Updates(map[string]interface{}{
				"base_points":       scores[i].BasePoints,
				"bonus_points":      scores[i].BonusPoints,
				"multiplied_points": scores[i].MultipliedPoints,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to recalculate scores: %w", err)
	}

	s.afterScoreMutation(ctx, &tournament, len(scores))
	return len(scores), nil
}

// RefreshGolferStats recomputes every golfer's derived season snapshot from
// the season's score records. Returns the number of golfers updated.
func (s *ScoreService) RefreshGolferStats(ctx context.Context, season int) (int, error) {
	column := models.StatsColumnForSeason(season)
	if column == "" {
		return 0, fmt.Errorf("season %d has no stats snapshot", season)
	}

	var tournaments []models.Tournament
	if err := s.db.WithContext(ctx).Where("season = ?", season).Find(&tournaments).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch tournaments: %w", err)
	}
	if len(tournaments) == 0 {
		return 0, nil
	}
	tournamentIDs := make([]uuid.UUID, len(tournaments))
	for i, t := range tournaments {
		tournamentIDs[i] = t.ID
	}

	var scores []models.Score
	if err := s.db.WithContext(ctx).Where("tournament_id IN ?", tournamentIDs).Find(&scores).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch scores: %w", err)
	}

	statsByGolfer := make(map[uuid.UUID]models.SeasonStats)
	for _, score := range scores {
		stats := statsByGolfer[score.GolferID]
		if score.Participated {
			stats.TimesPlayed++
		}
		if score.Position != nil {
			switch *score.Position {
			case 1:
				stats.TimesFirst++
			case 2:
				stats.TimesSecond++
			case 3:
				stats.TimesThird++
			}
		}
		if score.BonusPoints == 3 {
			stats.TimesScored36Plus++
		}
		if score.BonusPoints >= 1 {
			stats.TimesScored32Plus++
		}
		statsByGolfer[score.GolferID] = stats
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for golferID, stats := range statsByGolfer {
			if err := tx.Model(&models.Golfer{}).Where("id = ?", golferID).
				Update(column, stats).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update golfer stats: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"season":  season,
		"golfers": len(statsByGolfer),
	}).Info("Golfer season stats refreshed")
	return len(statsByGolfer), nil
}

func (s *ScoreService) afterScoreMutation(ctx context.Context, tournament *models.Tournament, count int) {
	s.cache.InvalidatePrefix(ctx, LeaderboardCachePrefix())
	if s.hub != nil {
		s.hub.BroadcastLeaderboardUpdate(tournament.Season)
	}
	s.logger.WithFields(logrus.Fields{
		"tournament": tournament.Name,
		"season":     tournament.Season,
		"records":    count,
	}).Info("Scores updated")
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
