package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// RosterSize is the fixed number of golfers on every team
const RosterSize = 6

// Pick is a user's team for one season, unique per (user, season). Re-saving
// a pick is a transfer and appends a PickHistory row.
type Pick struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_picks_user_season" json:"user_id"`
	Season    int            `gorm:"not null;uniqueIndex:idx_picks_user_season" json:"season"`
	GolferIDs pq.StringArray `gorm:"type:text[];not null" json:"golfer_ids"`
	CaptainID *string        `gorm:"type:uuid" json:"captain_id"`
	// TotalSpent is the sum of golfer prices at the time of save
	TotalSpent int64     `gorm:"not null;default:0" json:"total_spent"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Pick) TableName() string {
	return "picks"
}

// HasGolfer checks whether a golfer id is on the roster
func (p *Pick) HasGolfer(golferID string) bool {
	for _, id := range p.GolferIDs {
		if id == golferID {
			return true
		}
	}
	return false
}

// PickHistory is an append-only audit row written on every pick save,
// displayed newest first.
type PickHistory struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	PickID     uint           `gorm:"not null;index" json:"pick_id"`
	GolferIDs  datatypes.JSON `gorm:"type:jsonb;not null" json:"golfer_ids"`
	CaptainID  *string        `gorm:"type:uuid" json:"captain_id"`
	TotalSpent int64          `gorm:"not null;default:0" json:"total_spent"`
	Reason     string         `gorm:"type:varchar(50)" json:"reason"` // "initial" or "transfer"
	ChangedAt  time.Time      `gorm:"not null;index" json:"changed_at"`
}

func (PickHistory) TableName() string {
	return "pick_history"
}

// GolferIDList decodes the roster snapshot
func (h *PickHistory) GolferIDList() []string {
	var ids []string
	if err := json.Unmarshal(h.GolferIDs, &ids); err != nil {
		return nil
	}
	return ids
}

// NewPickHistory snapshots the current state of a pick
func NewPickHistory(p *Pick, reason string, changedAt time.Time) (*PickHistory, error) {
	snapshot, err := json.Marshal([]string(p.GolferIDs))
	if err != nil {
		return nil, err
	}
	return &PickHistory{
		PickID:     p.ID,
		GolferIDs:  snapshot,
		CaptainID:  p.CaptainID,
		TotalSpent: p.TotalSpent,
		Reason:     reason,
		ChangedAt:  changedAt,
	}, nil
}
