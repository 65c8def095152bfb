package scoring

import (
	"github.com/fairwayclub/fantasy-golf/internal/models"
)

// Ruleset names a base-points rule variant. Two historical variants exist and
// are kept as explicit strategies rather than merged: the flat rule in use
// today, and the legacy rule that scaled base points by field size.
type Ruleset int

const (
	RulesetFlat Ruleset = iota
	RulesetLegacyTiered
)

// Bonus point values. The two tiers are mutually exclusive, never additive.
const (
	bonusHigh = 3
	bonusLow  = 1
)

// BasePoints returns finishing-position points under the flat rule:
// 1st = 10, 2nd = 7, 3rd = 5, anything else 0.
func BasePoints(position *int) int {
	if position == nil {
		return 0
	}
	switch *position {
	case 1:
		return 10
	case 2:
		return 7
	case 3:
		return 5
	}
	return 0
}

// BasePointsTiered returns finishing-position points under the legacy
// field-size tiered rule: small fields only score a win, larger fields pay
// down to second and third.
func BasePointsTiered(position *int, tier models.GolferCountTier) int {
	if position == nil {
		return 0
	}
	switch tier {
	case models.TierSmall:
		if *position == 1 {
			return 5
		}
	case models.TierMedium:
		switch *position {
		case 1:
			return 5
		case 2:
			return 2
		}
	case models.TierLarge:
		switch *position {
		case 1:
			return 5
		case 2:
			return 3
		case 3:
			return 1
		}
	}
	return 0
}

// BasePointsFor dispatches on the selected ruleset. The score record engine
// uses RulesetFlat; the legacy ruleset is retained for historical recomputation.
func BasePointsFor(rs Ruleset, position *int, tier models.GolferCountTier) int {
	if rs == RulesetLegacyTiered {
		return BasePointsTiered(position, tier)
	}
	return BasePoints(position)
}

// BonusPoints returns the raw-score bonus for a round. Stableford counts up
// (higher is better), medal nett counts strokes relative to par (lower is
// better). Multi-day events double the stableford thresholds and widen the
// medal low tier.
//
//	stableford single: >=36 -> 3, >=32 -> 1
//	stableford multi:  >=72 -> 3, >=64 -> 1
//	medal single:      <=0  -> 3, <=4  -> 1
//	medal multi:       <=0  -> 3, <=8  -> 1
func BonusPoints(rawScore *int, format models.ScoringFormat, isMultiDay bool) int {
	if rawScore == nil {
		return 0
	}
	raw := *rawScore

	if format == models.FormatMedal {
		if raw <= 0 {
			return bonusHigh
		}
		low := 4
		if isMultiDay {
			low = 8
		}
		if raw <= low {
			return bonusLow
		}
		return 0
	}

	// stableford is the default format for historic records
	high, low := 36, 32
	if isMultiDay {
		high, low = 72, 64
	}
	switch {
	case raw >= high:
		return bonusHigh
	case raw >= low:
		return bonusLow
	}
	return 0
}
