package services

import "errors"

// Referenced-entity errors, surfaced by handlers as 404s
var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrGolferNotFound     = errors.New("golfer not found")
	ErrSeasonNotFound     = errors.New("season not found")
	ErrPickNotFound       = errors.New("pick not found")
)

// Roster validation errors, surfaced as 400s
var (
	ErrRosterSize         = errors.New("a team must have exactly 6 golfers")
	ErrDuplicateGolfer    = errors.New("a team cannot include the same golfer twice")
	ErrCaptainNotInRoster = errors.New("captain must be one of the selected golfers")
	ErrGolferInactive     = errors.New("team includes an inactive golfer")
	ErrBudgetExceeded     = errors.New("team exceeds the budget cap")
)

// League-state errors, surfaced as 409s with the blocking setting named
var (
	ErrTransfersLocked  = errors.New("transfer window is closed")
	ErrNewTeamsDisabled = errors.New("new team creation is disabled")
	ErrTransferLimit    = errors.New("weekly transfer limit reached")
)
