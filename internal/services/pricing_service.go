package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fairwayclub/fantasy-golf/internal/models"
	"github.com/fairwayclub/fantasy-golf/internal/scoring"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
)

// GolferPriceChange summarizes one golfer's repricing
type GolferPriceChange struct {
	GolferID     string `json:"golfer_id"`
	Name         string `json:"name"`
	OldPrice     int64  `json:"old_price"`
	NewPrice     int64  `json:"new_price"`
	SeasonPoints int    `json:"season_points"`
	TimesPlayed  int    `json:"times_played"`
}

// PricingResult is the outcome of a seasonal repricing run
type PricingResult struct {
	Updated  int                 `json:"updated"`
	MinPrice int64               `json:"min_price"`
	MaxPrice int64               `json:"max_price"`
	Summary  []GolferPriceChange `json:"summary"`
}

// PricingService derives golfer market prices from season performance
type PricingService struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewPricingService(db *database.DB, logger *logrus.Logger) *PricingService {
	return &PricingService{
		db:     db,
		logger: logger,
	}
}

// CalculateGolferPrices reprices every golfer from the season's score records
// and applies the changes as one batch. Golfers with no scores land on the
// price floor.
func (s *PricingService) CalculateGolferPrices(ctx context.Context, season int) (*PricingResult, error) {
	var golfers []models.Golfer
	if err := s.db.WithContext(ctx).Find(&golfers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch golfers: %w", err)
	}

	var tournaments []models.Tournament
	if err := s.db.WithContext(ctx).Where("season = ?", season).Find(&tournaments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tournaments: %w", err)
	}

	type performance struct {
		points int
		played int
	}
	perfByGolfer := make(map[string]performance)

	if len(tournaments) > 0 {
		tournamentIDs := make([]uuid.UUID, len(tournaments))
		for i, t := range tournaments {
			tournamentIDs[i] = t.ID
		}
		var scores []models.Score
		if err := s.db.WithContext(ctx).
			Where("tournament_id IN ? AND participated = ?", tournamentIDs, true).
			Find(&scores).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch scores: %w", err)
		}
		for _, score := range scores {
			perf := perfByGolfer[score.GolferID.String()]
			perf.points += score.MultipliedPoints
			perf.played++
			perfByGolfer[score.GolferID.String()] = perf
		}
	}

	inputs := make([]scoring.PriceInput, 0, len(golfers))
	for _, g := range golfers {
		perf := perfByGolfer[g.ID.String()]
		inputs = append(inputs, scoring.PriceInput{
			GolferID:    g.ID.String(),
			TotalPoints: perf.points,
			TimesPlayed: perf.played,
		})
	}
	prices := scoring.CalculatePrices(inputs)

	result := &PricingResult{
		MinPrice: scoring.MaxGolferPrice,
		MaxPrice: scoring.MinGolferPrice,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, g := range golfers {
			newPrice := prices[g.ID.String()]
			perf := perfByGolfer[g.ID.String()]

			if newPrice < result.MinPrice {
				result.MinPrice = newPrice
			}
			if newPrice > result.MaxPrice {
				result.MaxPrice = newPrice
			}
			result.Summary = append(result.Summary, GolferPriceChange{
				GolferID:     g.ID.String(),
				Name:         g.FullName(),
				OldPrice:     g.Price,
				NewPrice:     newPrice,
				SeasonPoints: perf.points,
				TimesPlayed:  perf.played,
			})

			if newPrice == g.Price {
				continue
			}
			if err := tx.Model(&models.Golfer{}).Where("id = ?", g.ID).
				Update("price", newPrice).Error; err != nil {
				return err
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update prices: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"season":  season,
		"updated": result.Updated,
	}).Info("Golfer prices recalculated")
	return result, nil
}
