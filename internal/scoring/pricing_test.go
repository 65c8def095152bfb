package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePricesTopPerformerHitsCeiling(t *testing.T) {
	prices := CalculatePrices([]PriceInput{
		{GolferID: "a", TotalPoints: 100, TimesPlayed: 10},
		{GolferID: "b", TotalPoints: 50, TimesPlayed: 10},
		{GolferID: "c", TotalPoints: 0, TimesPlayed: 0},
	})
	require.Len(t, prices, 3)

	assert.Equal(t, MaxGolferPrice, prices["a"])
	assert.Equal(t, MinGolferPrice, prices["c"])
	assert.Greater(t, prices["b"], MinGolferPrice)
	assert.Less(t, prices["b"], MaxGolferPrice)
}

func TestCalculatePricesRoundsToStep(t *testing.T) {
	prices := CalculatePrices([]PriceInput{
		{GolferID: "a", TotalPoints: 90, TimesPlayed: 0},
		{GolferID: "b", TotalPoints: 31, TimesPlayed: 0},
	})

	for id, price := range prices {
		assert.Zerof(t, price%PriceStep, "price for %s not on step: %d", id, price)
		assert.GreaterOrEqual(t, price, MinGolferPrice)
		assert.LessOrEqual(t, price, MaxGolferPrice)
	}
}

func TestCalculatePricesEmptySeasonPricesEveryoneAtFloor(t *testing.T) {
	prices := CalculatePrices([]PriceInput{
		{GolferID: "a"},
		{GolferID: "b"},
	})

	assert.Equal(t, MinGolferPrice, prices["a"])
	assert.Equal(t, MinGolferPrice, prices["b"])
}

func TestCalculatePricesAppearanceBonusBreaksTies(t *testing.T) {
	// Equal points, but showing up more often is worth something
	prices := CalculatePrices([]PriceInput{
		{GolferID: "regular", TotalPoints: 20, TimesPlayed: 20},
		{GolferID: "occasional", TotalPoints: 20, TimesPlayed: 2},
	})

	assert.Greater(t, prices["regular"], prices["occasional"])
}

func TestCalculatePricesNoInputs(t *testing.T) {
	assert.Empty(t, CalculatePrices(nil))
}
