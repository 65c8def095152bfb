package models

import (
	"strconv"
	"time"
)

// SeasonStatus represents the lifecycle of a season
type SeasonStatus string

const (
	SeasonSetup    SeasonStatus = "setup"
	SeasonActive   SeasonStatus = "active"
	SeasonComplete SeasonStatus = "complete"
)

// Season is one league year. Exactly one season is active at a time.
type Season struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"uniqueIndex;not null" json:"name"` // year as string, e.g. "2026"
	StartDate time.Time    `gorm:"not null" json:"start_date"`
	EndDate   time.Time    `gorm:"not null" json:"end_date"`
	IsActive  bool         `gorm:"default:false;index" json:"is_active"`
	Status    SeasonStatus `gorm:"type:varchar(20);default:'setup'" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (Season) TableName() string {
	return "seasons"
}

// Year parses the season name as a year, falling back to the start date
func (s *Season) Year() int {
	if y, err := strconv.Atoi(s.Name); err == nil {
		return y
	}
	return s.StartDate.Year()
}
