package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fairwayclub/fantasy-golf/internal/models"
	"github.com/fairwayclub/fantasy-golf/internal/scoring"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
)

// TeamView is a user's team with its aggregated scores
type TeamView struct {
	Pick      *models.Pick           `json:"pick"`
	Golfers   []scoring.GolferScores `json:"golfers"`
	Totals    scoring.TeamTotals     `json:"totals"`
	WeekStart time.Time              `json:"week_start"`
	WeekEnd   time.Time              `json:"week_end"`
}

// GolferRef names a golfer in a transfer row
type GolferRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransferView is one resolved transfer-history row
type TransferView struct {
	ChangedAt  time.Time   `json:"changed_at"`
	Reason     string      `json:"reason"`
	Added      []GolferRef `json:"added"`
	Removed    []GolferRef `json:"removed"`
	TotalSpent int64       `json:"total_spent"`
}

// PickService manages team selection: roster validation against the league
// rules, transfer gating, and the audit history behind transfer views.
type PickService struct {
	db     *database.DB
	cache  *CacheService
	logger *logrus.Logger

	now func() time.Time
}

func NewPickService(db *database.DB, cache *CacheService, logger *logrus.Logger) *PickService {
	return &PickService{
		db:     db,
		cache:  cache,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SaveTeam creates or replaces a user's team for a season. Validation rules
// are taken from the supplied LeagueRules object, assembled by the caller per
// request. Every save appends a pick history row.
func (s *PickService) SaveTeam(ctx context.Context, userID uint, season int, golferIDs []string, captainID *string, rules LeagueRules) (*models.Pick, error) {
	if len(golferIDs) != models.RosterSize {
		return nil, ErrRosterSize
	}
	seen := make(map[string]bool, len(golferIDs))
	for _, id := range golferIDs {
		if seen[id] {
			return nil, ErrDuplicateGolfer
		}
		seen[id] = true
	}
	if captainID != nil && !seen[*captainID] {
		return nil, ErrCaptainNotInRoster
	}

	var golfers []models.Golfer
	if err := s.db.WithContext(ctx).Where("id IN ?", golferIDs).Find(&golfers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch golfers: %w", err)
	}
	if len(golfers) != models.RosterSize {
		return nil, ErrGolferNotFound
	}
	var totalSpent int64
	for _, g := range golfers {
		if !g.IsActive {
			return nil, ErrGolferInactive
		}
		totalSpent += g.Price
	}
	if totalSpent > rules.TeamBudget {
		return nil, ErrBudgetExceeded
	}

	now := s.now()
	var pick models.Pick
	err := s.db.WithContext(ctx).Where("user_id = ? AND season = ?", userID, season).First(&pick).Error
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		return nil, fmt.Errorf("failed to fetch pick: %w", err)
	}

	reason := "transfer"
	if isNew {
		if !rules.AllowNewTeams {
			return nil, ErrNewTeamsDisabled
		}
		reason = "initial"
		pick = models.Pick{UserID: userID, Season: season}
	} else {
		if !rules.TransferWindowOpen {
			return nil, ErrTransfersLocked
		}
		weekStart, _ := scoring.WeekBounds(now)
		var transfersThisWeek int64
		if err := s.db.WithContext(ctx).Model(&models.PickHistory{}).
			Where("pick_id = ? AND reason = ? AND changed_at >= ?", pick.ID, "transfer", weekStart).
			Count(&transfersThisWeek).Error; err != nil {
			return nil, fmt.Errorf("failed to count transfers: %w", err)
		}
		if rules.MaxTransfersPerWeek > 0 && int(transfersThisWeek) >= rules.MaxTransfersPerWeek {
			return nil, ErrTransferLimit
		}
	}

	pick.GolferIDs = pq.StringArray(golferIDs)
	pick.CaptainID = captainID
	pick.TotalSpent = totalSpent

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&pick).Error; err != nil {
			return err
		}
		history, err := models.NewPickHistory(&pick, reason, now)
		if err != nil {
			return err
		}
		return tx.Create(history).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save pick: %w", err)
	}

	s.cache.InvalidatePrefix(ctx, LeaderboardCachePrefix())
	s.logger.WithFields(logrus.Fields{
		"user":   userID,
		"season": season,
		"reason": reason,
	}).Info("Team saved")
	return &pick, nil
}

// GetTeam returns the user's team with week/month/season scores attached
func (s *PickService) GetTeam(ctx context.Context, userID uint, season int) (*TeamView, error) {
	var pick models.Pick
	if err := s.db.WithContext(ctx).Where("user_id = ? AND season = ?", userID, season).First(&pick).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPickNotFound
		}
		return nil, fmt.Errorf("failed to fetch pick: %w", err)
	}

	var golfers []models.Golfer
	if err := s.db.WithContext(ctx).Where("id IN ?", []string(pick.GolferIDs)).Find(&golfers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch golfers: %w", err)
	}

	var tournaments []models.Tournament
	if err := s.db.WithContext(ctx).
		Where("season = ? AND status IN ?", season, []models.TournamentStatus{models.TournamentPublished, models.TournamentComplete}).
		Find(&tournaments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tournaments: %w", err)
	}

	var scores []models.Score
	if len(tournaments) > 0 {
		tournamentIDs := make([]uuid.UUID, len(tournaments))
		for i, t := range tournaments {
			tournamentIDs[i] = t.ID
		}
		golferUUIDs := make([]string, len(pick.GolferIDs))
		copy(golferUUIDs, pick.GolferIDs)
		if err := s.db.WithContext(ctx).
			Where("tournament_id IN ? AND golfer_id IN ?", tournamentIDs, golferUUIDs).
			Find(&scores).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch scores: %w", err)
		}
	}

	seasonStart := time.Date(season, time.January, 1, 0, 0, 0, 0, time.UTC)
	var seasonRow models.Season
	if err := s.db.WithContext(ctx).Where("name = ?", strconv.Itoa(season)).First(&seasonRow).Error; err == nil {
		seasonStart = seasonRow.StartDate
	}

	weekStart, weekEnd := scoring.WeekBounds(s.now())
	golferScores := scoring.TeamGolferScores(
		golfers,
		tournaments,
		scores,
		seasonStart,
		captainOf(&pick),
		weekStart, weekEnd,
		scoring.TeamEffectiveStart(pick.CreatedAt),
	)

	return &TeamView{
		Pick:      &pick,
		Golfers:   golferScores,
		Totals:    scoring.SumTeamTotals(golferScores),
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
	}, nil
}

// TransferHistory derives the user's transfer rows with golfer names resolved
func (s *PickService) TransferHistory(ctx context.Context, userID uint, season int) ([]TransferView, error) {
	var pick models.Pick
	if err := s.db.WithContext(ctx).Where("user_id = ? AND season = ?", userID, season).First(&pick).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPickNotFound
		}
		return nil, fmt.Errorf("failed to fetch pick: %w", err)
	}

	var history []models.PickHistory
	if err := s.db.WithContext(ctx).
		Where("pick_id = ?", pick.ID).
		Order("changed_at DESC").
		Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch pick history: %w", err)
	}

	entries := scoring.TransferHistory(history)

	// Resolve names for every golfer id appearing in the history
	idSet := make(map[string]bool)
	for _, e := range entries {
		for _, id := range e.Added {
			idSet[id] = true
		}
		for _, id := range e.Removed {
			idSet[id] = true
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	names := make(map[string]string, len(ids))
	if len(ids) > 0 {
		var golfers []models.Golfer
		if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&golfers).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch golfers: %w", err)
		}
		for _, g := range golfers {
			names[g.ID.String()] = g.FullName()
		}
	}

	views := make([]TransferView, 0, len(entries))
	for _, e := range entries {
		views = append(views, TransferView{
			ChangedAt:  e.ChangedAt,
			Reason:     e.Reason,
			Added:      resolveRefs(e.Added, names),
			Removed:    resolveRefs(e.Removed, names),
			TotalSpent: e.TotalSpent,
		})
	}
	return views, nil
}

func resolveRefs(ids []string, names map[string]string) []GolferRef {
	refs := make([]GolferRef, 0, len(ids))
	for _, id := range ids {
		name := names[id]
		if name == "" {
			name = "Unknown golfer"
		}
		refs = append(refs, GolferRef{ID: id, Name: name})
	}
	return refs
}
