package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fairwayclub/fantasy-golf/internal/models"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
)

// LeagueRules is the explicit configuration object assembled once per request
// and passed into pick validation, instead of ad hoc settings lookups at each
// call site.
type LeagueRules struct {
	TransferWindowOpen  bool  `json:"transfer_window_open"`
	AllowNewTeams       bool  `json:"allow_new_teams"`
	MaxTransfersPerWeek int   `json:"max_transfers_per_week"`
	TeamBudget          int64 `json:"team_budget"`
	CurrentSeason       int   `json:"current_season"`
}

type SettingsService struct {
	db    *database.DB
	cache *CacheService
	ttl   time.Duration
}

func NewSettingsService(db *database.DB, cache *CacheService, ttl time.Duration) *SettingsService {
	return &SettingsService{
		db:    db,
		cache: cache,
		ttl:   ttl,
	}
}

// Get returns a setting value, memoized for the configured TTL. Missing rows
// fall back to the known default for the key.
func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.cache.Memoize(ctx, SettingCacheKey(key), s.ttl, &value, func() error {
		var setting models.Setting
		if err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				value = models.SettingDefaults[key]
				return nil
			}
			return err
		}
		value = setting.Value
		return nil
	})
	return value, err
}

func (s *SettingsService) GetBool(ctx context.Context, key string) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return raw == "true" || raw == "1", nil
}

func (s *SettingsService) GetInt(ctx context.Context, key string) (int, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *SettingsService) GetInt64(ctx context.Context, key string) (int64, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Set upserts a setting and invalidates both the settings cache and the
// leaderboard caches, since gating settings affect what the boards show.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return err
	}

	s.cache.InvalidatePrefix(ctx, SettingsCachePrefix())
	s.cache.InvalidatePrefix(ctx, LeaderboardCachePrefix())
	logrus.WithFields(logrus.Fields{"key": key, "value": value}).Info("Setting updated")
	return nil
}

// List returns every stored setting row
func (s *SettingsService) List(ctx context.Context) ([]models.Setting, error) {
	var settings []models.Setting
	if err := s.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// LeagueRules assembles the request-scoped rules object from settings
func (s *SettingsService) LeagueRules(ctx context.Context) (LeagueRules, error) {
	var rules LeagueRules
	var err error

	if rules.TransferWindowOpen, err = s.GetBool(ctx, models.SettingTransferWindowOpen); err != nil {
		return rules, err
	}
	if rules.AllowNewTeams, err = s.GetBool(ctx, models.SettingAllowNewTeams); err != nil {
		return rules, err
	}
	if rules.MaxTransfersPerWeek, err = s.GetInt(ctx, models.SettingMaxTransfersPerWeek); err != nil {
		return rules, err
	}
	if rules.TeamBudget, err = s.GetInt64(ctx, models.SettingTeamBudget); err != nil {
		return rules, err
	}
	if rules.CurrentSeason, err = s.GetInt(ctx, models.SettingCurrentSeason); err != nil {
		return rules, err
	}
	return rules, nil
}

// CurrentSeason resolves the active season year, preferring the active season
// row and falling back to the current_season setting.
func (s *SettingsService) CurrentSeason(ctx context.Context) (int, error) {
	var season models.Season
	err := s.db.WithContext(ctx).Where("is_active = ?", true).First(&season).Error
	if err == nil {
		return season.Year(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	return s.GetInt(ctx, models.SettingCurrentSeason)
}
