package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairwayclub/fantasy-golf/internal/models"
)

func intPtr(n int) *int { return &n }

func TestBasePoints(t *testing.T) {
	tests := []struct {
		name     string
		position *int
		want     int
	}{
		{"first place", intPtr(1), 10},
		{"second place", intPtr(2), 7},
		{"third place", intPtr(3), 5},
		{"fourth place scores nothing", intPtr(4), 0},
		{"mid field", intPtr(12), 0},
		{"no position", nil, 0},
		{"zero position", intPtr(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BasePoints(tt.position))
		})
	}
}

func TestBasePointsTiered(t *testing.T) {
	tests := []struct {
		name     string
		position *int
		tier     models.GolferCountTier
		want     int
	}{
		{"small field win", intPtr(1), models.TierSmall, 5},
		{"small field second pays nothing", intPtr(2), models.TierSmall, 0},
		{"medium field win", intPtr(1), models.TierMedium, 5},
		{"medium field second", intPtr(2), models.TierMedium, 2},
		{"medium field third pays nothing", intPtr(3), models.TierMedium, 0},
		{"large field win", intPtr(1), models.TierLarge, 5},
		{"large field second", intPtr(2), models.TierLarge, 3},
		{"large field third", intPtr(3), models.TierLarge, 1},
		{"large field fourth pays nothing", intPtr(4), models.TierLarge, 0},
		{"no position", nil, models.TierLarge, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BasePointsTiered(tt.position, tt.tier))
		})
	}
}

func TestBasePointsFor(t *testing.T) {
	assert.Equal(t, 10, BasePointsFor(RulesetFlat, intPtr(1), models.TierSmall))
	assert.Equal(t, 5, BasePointsFor(RulesetLegacyTiered, intPtr(1), models.TierSmall))
	assert.Equal(t, 7, BasePointsFor(RulesetFlat, intPtr(2), models.TierLarge))
	assert.Equal(t, 3, BasePointsFor(RulesetLegacyTiered, intPtr(2), models.TierLarge))
}

func TestBonusPointsStableford(t *testing.T) {
	tests := []struct {
		name       string
		raw        *int
		isMultiDay bool
		want       int
	}{
		{"36 points hits high tier", intPtr(36), false, 3},
		{"40 points hits high tier", intPtr(40), false, 3},
		{"35 points hits low tier", intPtr(35), false, 1},
		{"32 points hits low tier", intPtr(32), false, 1},
		{"31 points no bonus", intPtr(31), false, 0},
		{"multi day 72 hits high tier", intPtr(72), true, 3},
		{"multi day 64 hits low tier", intPtr(64), true, 1},
		{"multi day 63 no bonus", intPtr(63), true, 0},
		{"multi day 36 is below single threshold doubled", intPtr(36), true, 0},
		{"no raw score", nil, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BonusPoints(tt.raw, models.FormatStableford, tt.isMultiDay))
		})
	}
}

func TestBonusPointsStablefordTiersAreExclusive(t *testing.T) {
	// A 36-point round earns exactly 3, never 3+1
	assert.Equal(t, 3, BonusPoints(intPtr(36), models.FormatStableford, false))
	assert.Equal(t, 3, BonusPoints(intPtr(72), models.FormatStableford, true))
}

func TestBonusPointsMedal(t *testing.T) {
	tests := []struct {
		name       string
		raw        *int
		isMultiDay bool
		want       int
	}{
		{"level par hits high tier", intPtr(0), false, 3},
		{"under par hits high tier", intPtr(-2), false, 3},
		{"four over hits low tier", intPtr(4), false, 1},
		{"one over hits low tier", intPtr(1), false, 1},
		{"five over no bonus", intPtr(5), false, 0},
		{"multi day level par hits high tier", intPtr(0), true, 3},
		{"multi day eight over hits low tier", intPtr(8), true, 1},
		{"multi day nine over no bonus", intPtr(9), true, 0},
		{"no raw score", nil, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BonusPoints(tt.raw, models.FormatMedal, tt.isMultiDay))
		})
	}
}

func TestBonusPointsDefaultsToStableford(t *testing.T) {
	// Unset format behaves as stableford for historic records
	assert.Equal(t, 3, BonusPoints(intPtr(38), "", false))
	assert.Equal(t, 1, BonusPoints(intPtr(33), "", false))
}
