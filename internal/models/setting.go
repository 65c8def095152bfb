package models

import "time"

// Setting is a generic key/value row for league configuration. Read-heavy and
// memoized by the settings service.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	SettingTransferWindowOpen  = "transfer_window_open"
	SettingAllowNewTeams       = "allow_new_teams"
	SettingMaxTransfersPerWeek = "max_transfers_per_week"
	SettingTeamBudget          = "team_budget"
	SettingCurrentSeason       = "current_season"
)

// SettingDefaults are applied when a key has no row
var SettingDefaults = map[string]string{
	SettingTransferWindowOpen:  "true",
	SettingAllowNewTeams:       "true",
	SettingMaxTransfersPerWeek: "2",
	SettingTeamBudget:          "60000000",
	SettingCurrentSeason:       "2026",
}
