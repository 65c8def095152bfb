package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fairwayclub/fantasy-golf/internal/models"
	"github.com/fairwayclub/fantasy-golf/internal/scoring"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
)

// FullLeaderboard carries all three standing windows for one season
type FullLeaderboard struct {
	Season       []scoring.RankedEntry `json:"season"`
	Month        []scoring.RankedEntry `json:"month"`
	Week         []scoring.RankedEntry `json:"week"`
	CurrentMonth string                `json:"current_month"`
	WeekStart    time.Time             `json:"week_start"`
	WeekEnd      time.Time             `json:"week_end"`
}

// LeaderboardService aggregates every user's roster points and ranks them.
// Results are memoized briefly; score and settings mutations invalidate the
// cache, so serving from cache never changes what a fresh computation would
// return.
type LeaderboardService struct {
	db     *database.DB
	cache  *CacheService
	ttl    time.Duration
	logger *logrus.Logger

	// now is swappable for tests
	now func() time.Time
}

func NewLeaderboardService(db *database.DB, cache *CacheService, ttl time.Duration, logger *logrus.Logger) *LeaderboardService {
	return &LeaderboardService{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// seasonData is everything a leaderboard build fetches up front
type seasonData struct {
	users          []models.User
	picksByUser    map[uint]*models.Pick
	tournaments    []models.Tournament
	scoresByGolfer map[string][]models.Score
	seasonStart    time.Time
}

func (s *LeaderboardService) loadSeason(ctx context.Context, season int) (*seasonData, error) {
	data := &seasonData{
		picksByUser:    make(map[uint]*models.Pick),
		scoresByGolfer: make(map[string][]models.Score),
	}

	if err := s.db.WithContext(ctx).Find(&data.users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	var picks []models.Pick
	if err := s.db.WithContext(ctx).Where("season = ?", season).Find(&picks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch picks: %w", err)
	}
	for i := range picks {
		data.picksByUser[picks[i].UserID] = &picks[i]
	}

	if err := s.db.WithContext(ctx).
		Where("season = ? AND status IN ?", season, []models.TournamentStatus{models.TournamentPublished, models.TournamentComplete}).
		Find(&data.tournaments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tournaments: %w", err)
	}

	if len(data.tournaments) > 0 {
		tournamentIDs := make([]uuid.UUID, len(data.tournaments))
		for i, t := range data.tournaments {
			tournamentIDs[i] = t.ID
		}
		var scores []models.Score
		if err := s.db.WithContext(ctx).Where("tournament_id IN ?", tournamentIDs).Find(&scores).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch scores: %w", err)
		}
		for _, score := range scores {
			key := score.GolferID.String()
			data.scoresByGolfer[key] = append(data.scoresByGolfer[key], score)
		}
	}

	data.seasonStart = time.Date(season, time.January, 1, 0, 0, 0, 0, time.UTC)
	var seasonRow models.Season
	err := s.db.WithContext(ctx).Where("name = ?", strconv.Itoa(season)).First(&seasonRow).Error
	if err == nil {
		data.seasonStart = seasonRow.StartDate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch season: %w", err)
	}

	return data, nil
}

// rosterScores collects a pick's golfers' score records
func (d *seasonData) rosterScores(pick *models.Pick) []models.Score {
	var scores []models.Score
	for _, golferID := range pick.GolferIDs {
		scores = append(scores, d.scoresByGolfer[golferID]...)
	}
	return scores
}

func captainOf(pick *models.Pick) string {
	if pick.CaptainID == nil {
		return ""
	}
	return *pick.CaptainID
}

// windowEntries computes every user's points for one [lower, upper) window.
// Users without a pick appear at zero points rather than being omitted.
func (d *seasonData) windowEntries(lower, upper time.Time) []scoring.Entry {
	entries := make([]scoring.Entry, 0, len(d.users))
	for _, user := range d.users {
		entry := scoring.Entry{UserID: user.ID, Username: user.Username}
		if pick, ok := d.picksByUser[user.ID]; ok {
			entry.Points = scoring.TeamWindowPoints(
				d.tournaments,
				d.rosterScores(pick),
				captainOf(pick),
				lower, upper,
				scoring.TeamEffectiveStart(pick.CreatedAt),
			)
		}
		entries = append(entries, entry)
	}
	return entries
}

// seasonEntries bounds each user's window below by the season's first
// gameweek and their own team effective start.
func (d *seasonData) seasonEntries(upper time.Time) []scoring.Entry {
	entries := make([]scoring.Entry, 0, len(d.users))
	for _, user := range d.users {
		entry := scoring.Entry{UserID: user.ID, Username: user.Username}
		if pick, ok := d.picksByUser[user.ID]; ok {
			floor := scoring.SeasonWindowFloor(d.seasonStart, scoring.TeamEffectiveStart(pick.CreatedAt))
			entry.Points = scoring.TeamWindowPoints(
				d.tournaments,
				d.rosterScores(pick),
				captainOf(pick),
				floor, upper,
				floor,
			)
		}
		entries = append(entries, entry)
	}
	return entries
}

var farFuture = time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC)

// GetLeaderboard returns the simple season standings
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, season int) ([]scoring.RankedEntry, error) {
	var ranked []scoring.RankedEntry
	err := s.cache.Memoize(ctx, LeaderboardCacheKey("simple", season), s.ttl, &ranked, func() error {
		data, err := s.loadSeason(ctx, season)
		if err != nil {
			return err
		}
		ranked = scoring.RankEntries(data.seasonEntries(farFuture), nil)
		return nil
	})
	return ranked, err
}

// GetFullLeaderboard computes week, month and season standings in one pass,
// ranking each window independently. Week and month movement is diffed
// against the previous week and previous month respectively.
func (s *LeaderboardService) GetFullLeaderboard(ctx context.Context, season int) (*FullLeaderboard, error) {
	var board FullLeaderboard
	err := s.cache.Memoize(ctx, LeaderboardCacheKey("full", season), s.ttl, &board, func() error {
		data, err := s.loadSeason(ctx, season)
		if err != nil {
			return err
		}

		now := s.now()
		weekStart, weekEnd := scoring.WeekBounds(now)
		monthStart, monthEnd := scoring.MonthBounds(weekEnd.AddDate(0, 0, -1))
		prevMonthStart, prevMonthEnd := scoring.MonthBounds(monthStart.AddDate(0, 0, -1))

		board = FullLeaderboard{
			Week: scoring.RankEntries(
				data.windowEntries(weekStart, weekEnd),
				data.windowEntries(weekStart.AddDate(0, 0, -7), weekStart),
			),
			Month: scoring.RankEntries(
				data.windowEntries(monthStart, monthEnd),
				data.windowEntries(prevMonthStart, prevMonthEnd),
			),
			Season:       scoring.RankEntries(data.seasonEntries(farFuture), nil),
			CurrentMonth: monthStart.Format("January"),
			WeekStart:    weekStart,
			WeekEnd:      weekEnd,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// GetTournamentLeaderboard restricts point contribution to a single
// tournament's scores.
func (s *LeaderboardService) GetTournamentLeaderboard(ctx context.Context, tournamentID uuid.UUID, season int) ([]scoring.RankedEntry, error) {
	var ranked []scoring.RankedEntry
	key := TournamentLeaderboardCacheKey(season, tournamentID.String())
	err := s.cache.Memoize(ctx, key, s.ttl, &ranked, func() error {
		var tournament models.Tournament
		if err := s.db.WithContext(ctx).First(&tournament, "id = ?", tournamentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to fetch tournament: %w", err)
		}

		data, err := s.loadSeason(ctx, season)
		if err != nil {
			return err
		}

		entries := make([]scoring.Entry, 0, len(data.users))
		for _, user := range data.users {
			entry := scoring.Entry{UserID: user.ID, Username: user.Username}
			if pick, ok := data.picksByUser[user.ID]; ok {
				var tournamentScores []models.Score
				for _, score := range data.rosterScores(pick) {
					if score.TournamentID == tournamentID {
						tournamentScores = append(tournamentScores, score)
					}
				}
				entry.Points = scoring.TeamWindowPoints(
					data.tournaments,
					tournamentScores,
					captainOf(pick),
					scoring.TeamEffectiveStart(pick.CreatedAt), farFuture,
					scoring.TeamEffectiveStart(pick.CreatedAt),
				)
			}
			entries = append(entries, entry)
		}
		ranked = scoring.RankEntries(entries, nil)
		return nil
	})
	return ranked, err
}
