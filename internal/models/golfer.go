package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SeasonStats is a derived per-season snapshot of a golfer's results. It is
// recomputed from score records and never hand-edited.
type SeasonStats struct {
	TimesPlayed       int `json:"times_played"`
	TimesFirst        int `json:"times_first"`
	TimesSecond       int `json:"times_second"`
	TimesThird        int `json:"times_third"`
	TimesScored36Plus int `json:"times_scored_36_plus"` // top bonus tier hits
	TimesScored32Plus int `json:"times_scored_32_plus"` // any bonus tier hits
}

// Value implements driver.Valuer for database storage
func (s SeasonStats) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *SeasonStats) Scan(value interface{}) error {
	if value == nil {
		*s = SeasonStats{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, s)
}

// Golfer represents a draftable golfer
type Golfer struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName string      `gorm:"not null" json:"first_name"`
	LastName  string      `gorm:"not null;index" json:"last_name"`
	Price     int64       `gorm:"not null;default:3000000" json:"price"`
	IsActive  bool        `gorm:"default:true" json:"is_active"`
	Stats2024 SeasonStats `gorm:"type:jsonb" json:"stats_2024"`
	Stats2025 SeasonStats `gorm:"type:jsonb" json:"stats_2025"`
	Stats2026 SeasonStats `gorm:"type:jsonb" json:"stats_2026"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (Golfer) TableName() string {
	return "golfers"
}

func (g *Golfer) FullName() string {
	return g.FirstName + " " + g.LastName
}

// StatsForSeason returns the snapshot for the given season year, or a zero
// snapshot for untracked seasons.
func (g *Golfer) StatsForSeason(season int) SeasonStats {
	switch season {
	case 2024:
		return g.Stats2024
	case 2025:
		return g.Stats2025
	case 2026:
		return g.Stats2026
	}
	return SeasonStats{}
}

// SetStatsForSeason writes the snapshot for a tracked season year. Untracked
// seasons are ignored.
func (g *Golfer) SetStatsForSeason(season int, stats SeasonStats) {
	switch season {
	case 2024:
		g.Stats2024 = stats
	case 2025:
		g.Stats2025 = stats
	case 2026:
		g.Stats2026 = stats
	}
}

// StatsColumnForSeason maps a season year to its snapshot column, used for
// batch updates. Returns "" for untracked seasons.
func StatsColumnForSeason(season int) string {
	switch season {
	case 2024:
		return "stats_2024"
	case 2025:
		return "stats_2025"
	case 2026:
		return "stats_2026"
	}
	return ""
}
