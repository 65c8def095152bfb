package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TournamentType controls the default multiplier and multi-day flag of an event
type TournamentType string

const (
	TournamentRollup           TournamentType = "rollup"
	TournamentWeekdayMedal     TournamentType = "weekday-medal"
	TournamentWeekendMedal     TournamentType = "weekend-medal"
	TournamentPresidentsCup    TournamentType = "presidents-cup"
	TournamentFounders         TournamentType = "founders"
	TournamentClubChampionship TournamentType = "club-championship"
)

// ScoringFormat selects how raw scores are interpreted
type ScoringFormat string

const (
	// FormatStableford scores points, higher is better
	FormatStableford ScoringFormat = "stableford"
	// FormatMedal scores nett strokes relative to par, lower is better
	FormatMedal ScoringFormat = "medal"
)

// TournamentStatus represents the lifecycle of a tournament
type TournamentStatus string

const (
	TournamentDraft     TournamentStatus = "draft"
	TournamentPublished TournamentStatus = "published"
	TournamentComplete  TournamentStatus = "complete"
)

// GolferCountTier buckets the field size. Informational, except under the
// legacy tiered base-points ruleset.
type GolferCountTier string

const (
	TierSmall  GolferCountTier = "0-10"
	TierMedium GolferCountTier = "10-20"
	TierLarge  GolferCountTier = "20+"
)

type Tournament struct {
	ID                     uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name                   string           `gorm:"not null" json:"name"`
	StartDate              time.Time        `gorm:"not null;index" json:"start_date"`
	EndDate                time.Time        `gorm:"not null" json:"end_date"`
	Type                   TournamentType   `gorm:"type:varchar(50);not null" json:"tournament_type"`
	ScoringFormat          ScoringFormat    `gorm:"type:varchar(20)" json:"scoring_format"`
	IsMultiDay             bool             `gorm:"default:false" json:"is_multi_day"`
	Multiplier             int              `gorm:"not null;default:1" json:"multiplier"`
	GolferCountTier        GolferCountTier  `gorm:"type:varchar(10);default:'0-10'" json:"golfer_count_tier"`
	Season                 int              `gorm:"not null;index" json:"season"`
	Status                 TournamentStatus `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	ParticipatingGolferIDs pq.StringArray   `gorm:"type:text[]" json:"participating_golfer_ids"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

func (Tournament) TableName() string {
	return "tournaments"
}

// TypeDefaults returns the default multiplier and multi-day flag for a
// tournament type.
func TypeDefaults(t TournamentType) (multiplier int, isMultiDay bool) {
	switch t {
	case TournamentPresidentsCup, TournamentFounders:
		return 2, false
	case TournamentClubChampionship:
		return 2, true
	default:
		return 1, false
	}
}

// EffectiveScoringFormat defaults to stableford when unset, matching historic
// records created before the format field existed.
func (t *Tournament) EffectiveScoringFormat() ScoringFormat {
	if t.ScoringFormat == "" {
		return FormatStableford
	}
	return t.ScoringFormat
}

// EffectiveMultiplier floors the multiplier at 1
func (t *Tournament) EffectiveMultiplier() int {
	if t.Multiplier < 1 {
		return 1
	}
	return t.Multiplier
}

// AddParticipant records a golfer in the participating set. Returns true when
// the set changed.
func (t *Tournament) AddParticipant(golferID uuid.UUID) bool {
	id := golferID.String()
	for _, existing := range t.ParticipatingGolferIDs {
		if existing == id {
			return false
		}
	}
	t.ParticipatingGolferIDs = append(t.ParticipatingGolferIDs, id)
	t.GolferCountTier = DeriveGolferCountTier(len(t.ParticipatingGolferIDs))
	return true
}

// DeriveGolferCountTier buckets a field size
func DeriveGolferCountTier(fieldSize int) GolferCountTier {
	switch {
	case fieldSize < 10:
		return TierSmall
	case fieldSize < 20:
		return TierMedium
	default:
		return TierLarge
	}
}

// IsScored reports whether the tournament counts toward team totals
func (t *Tournament) IsScored() bool {
	return t.Status == TournamentPublished || t.Status == TournamentComplete
}
