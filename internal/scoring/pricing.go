package scoring

import "math"

// Golfer market price band, in currency units
const (
	MinGolferPrice int64 = 3_000_000
	MaxGolferPrice int64 = 15_000_000
	PriceStep      int64 = 500_000
)

// appearanceBonus rewards showing up independent of points scored
const appearanceBonus = 0.5

// PriceInput is one golfer's season performance summary
type PriceInput struct {
	GolferID    string
	TotalPoints int // sum of multiplied points over participated scores
	TimesPlayed int
}

// CalculatePrices maps season performance linearly into the price band.
// Performance value is total points plus a small per-appearance bonus,
// normalized by the best value in the field (floored at 1 so an empty season
// prices everyone at the minimum), then rounded to the nearest price step.
func CalculatePrices(inputs []PriceInput) map[string]int64 {
	maxValue := 1.0
	values := make(map[string]float64, len(inputs))
	for _, in := range inputs {
		v := float64(in.TotalPoints) + appearanceBonus*float64(in.TimesPlayed)
		values[in.GolferID] = v
		if v > maxValue {
			maxValue = v
		}
	}

	prices := make(map[string]int64, len(inputs))
	for id, v := range values {
		ratio := v / maxValue
		raw := float64(MinGolferPrice) + ratio*float64(MaxGolferPrice-MinGolferPrice)
		price := int64(math.Round(raw/float64(PriceStep))) * PriceStep
		if price < MinGolferPrice {
			price = MinGolferPrice
		}
		prices[id] = price
	}
	return prices
}
