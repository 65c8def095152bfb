package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fairwayclub/fantasy-golf/internal/models"
	"github.com/fairwayclub/fantasy-golf/internal/services"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
	"github.com/fairwayclub/fantasy-golf/pkg/utils"
)

type TournamentHandler struct {
	db     *database.DB
	scores *services.ScoreService
	logger *logrus.Logger
}

func NewTournamentHandler(db *database.DB, scores *services.ScoreService, logger *logrus.Logger) *TournamentHandler {
	return &TournamentHandler{
		db:     db,
		scores: scores,
		logger: logger,
	}
}

// List returns tournaments, optionally filtered by ?season and ?status
func (h *TournamentHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Order("start_date DESC")
	if seasonStr := c.Query("season"); seasonStr != "" {
		season, err := strconv.Atoi(seasonStr)
		if err != nil {
			utils.SendValidationError(c, "Invalid season", "expected ?season=YYYY")
			return
		}
		query = query.Where("season = ?", season)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tournaments []models.Tournament
	if err := query.Find(&tournaments).Error; err != nil {
		utils.SendInternalError(c, "Failed to fetch tournaments")
		return
	}
	utils.SendSuccess(c, tournaments)
}

// Get returns one tournament with its scores preloaded
func (h *TournamentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid tournament id", err.Error())
		return
	}

	var tournament models.Tournament
	if err := h.db.WithContext(c.Request.Context()).First(&tournament, "id = ?", id).Error; err != nil {
		utils.SendNotFound(c, "Tournament not found")
		return
	}
	utils.SendSuccess(c, tournament)
}

type tournamentRequest struct {
	Name          string                   `json:"name" binding:"required"`
	StartDate     time.Time                `json:"start_date" binding:"required"`
	EndDate       time.Time                `json:"end_date"`
	Type          models.TournamentType    `json:"tournament_type" binding:"required"`
	ScoringFormat models.ScoringFormat     `json:"scoring_format"`
	IsMultiDay    *bool                    `json:"is_multi_day"`
	Multiplier    *int                     `json:"multiplier"`
	Season        int                      `json:"season" binding:"required"`
	Status        *models.TournamentStatus `json:"status"`
}

// Create adds a tournament. Multiplier and multi-day default from the type
// unless explicitly overridden.
func (h *TournamentHandler) Create(c *gin.Context) {
	var req tournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid tournament payload", err.Error())
		return
	}

	multiplier, isMultiDay := models.TypeDefaults(req.Type)
	if req.Multiplier != nil {
		multiplier = *req.Multiplier
	}
	if req.IsMultiDay != nil {
		isMultiDay = *req.IsMultiDay
	}
	endDate := req.EndDate
	if endDate.IsZero() {
		endDate = req.StartDate
	}
	format := req.ScoringFormat
	if format == "" {
		format = models.FormatStableford
	}

	tournament := models.Tournament{
		Name:          req.Name,
		StartDate:     req.StartDate,
		EndDate:       endDate,
		Type:          req.Type,
		ScoringFormat: format,
		IsMultiDay:    isMultiDay,
		Multiplier:    multiplier,
		Season:        req.Season,
		Status:        models.TournamentDraft,
	}
	if req.Status != nil {
		tournament.Status = *req.Status
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&tournament).Error; err != nil {
		utils.SendInternalError(c, "Failed to create tournament")
		return
	}
	utils.SendSuccess(c, tournament)
}

// Update modifies a tournament. When the scoring configuration changes and
// scores already exist, they are recalculated under the new configuration.
func (h *TournamentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid tournament id", err.Error())
		return
	}

	var req tournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid tournament payload", err.Error())
		return
	}

	ctx := c.Request.Context()
	var tournament models.Tournament
	if err := h.db.WithContext(ctx).First(&tournament, "id = ?", id).Error; err != nil {
		utils.SendNotFound(c, "Tournament not found")
		return
	}

	before := tournament
	tournament.Name = req.Name
	tournament.StartDate = req.StartDate
	if !req.EndDate.IsZero() {
		tournament.EndDate = req.EndDate
	}
	tournament.Type = req.Type
	tournament.Season = req.Season
	if req.ScoringFormat != "" {
		tournament.ScoringFormat = req.ScoringFormat
	}
	if req.IsMultiDay != nil {
		tournament.IsMultiDay = *req.IsMultiDay
	}
	if req.Multiplier != nil {
		tournament.Multiplier = *req.Multiplier
	}
	if req.Status != nil {
		tournament.Status = *req.Status
	}

	if err := h.db.WithContext(ctx).Save(&tournament).Error; err != nil {
		utils.SendInternalError(c, "Failed to update tournament")
		return
	}

	recalculated := 0
	if scoringConfigChanged(&before, &tournament) {
		recalculated, err = h.scores.RecalculateTournament(ctx, tournament.ID)
		if err != nil {
			sendServiceError(c, err)
			return
		}
		if recalculated > 0 {
			h.logger.WithFields(logrus.Fields{
				"tournament": tournament.Name,
				"records":    recalculated,
			}).Info("Scores recalculated after config change")
		}
	}

	utils.SendSuccess(c, gin.H{
		"tournament":   tournament,
		"recalculated": recalculated,
	})
}

// Delete removes a tournament and its score records
func (h *TournamentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid tournament id", err.Error())
		return
	}

	ctx := c.Request.Context()
	var tournament models.Tournament
	if err := h.db.WithContext(ctx).First(&tournament, "id = ?", id).Error; err != nil {
		utils.SendNotFound(c, "Tournament not found")
		return
	}

	if err := h.db.WithContext(ctx).Where("tournament_id = ?", id).Delete(&models.Score{}).Error; err != nil {
		utils.SendInternalError(c, "Failed to delete tournament scores")
		return
	}
	if err := h.db.WithContext(ctx).Delete(&tournament).Error; err != nil {
		utils.SendInternalError(c, "Failed to delete tournament")
		return
	}
	utils.SendSuccess(c, gin.H{"deleted": true})
}

// Recalculate reapplies the current scoring configuration to stored scores
func (h *TournamentHandler) Recalculate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid tournament id", err.Error())
		return
	}

	count, err := h.scores.RecalculateTournament(c.Request.Context(), id)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccess(c, gin.H{"recalculated": count})
}

func scoringConfigChanged(before, after *models.Tournament) bool {
	return before.ScoringFormat != after.ScoringFormat ||
		before.IsMultiDay != after.IsMultiDay ||
		before.Multiplier != after.Multiplier ||
		before.Type != after.Type
}
