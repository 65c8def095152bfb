package models

import (
	"time"

	"github.com/google/uuid"
)

// Score is one fantasy-point record per (golfer, tournament) pair, enforced
// unique. Point fields are derived from the raw inputs and the tournament's
// scoring configuration; re-entering a score overwrites them in place.
type Score struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TournamentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_scores_tournament_golfer" json:"tournament_id"`
	GolferID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_scores_tournament_golfer;index" json:"golfer_id"`
	Participated bool      `gorm:"not null;default:false" json:"participated"`
	Position     *int      `json:"position"`  // 1, 2, 3 or null
	RawScore     *int      `json:"raw_score"` // stableford points or medal nett relative to par
	BasePoints   int       `gorm:"not null;default:0" json:"base_points"`
	BonusPoints  int       `gorm:"not null;default:0" json:"bonus_points"`
	// MultipliedPoints = (BasePoints + BonusPoints) * tournament multiplier
	MultipliedPoints int       `gorm:"not null;default:0" json:"multiplied_points"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Associations
	Tournament *Tournament `gorm:"foreignKey:TournamentID" json:"tournament,omitempty"`
	Golfer     *Golfer     `gorm:"foreignKey:GolferID" json:"golfer,omitempty"`
}

func (Score) TableName() string {
	return "scores"
}
