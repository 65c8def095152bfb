package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fairwayclub/fantasy-golf/internal/models"
	"github.com/fairwayclub/fantasy-golf/internal/services"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
	"github.com/fairwayclub/fantasy-golf/pkg/utils"
)

type ScoreHandler struct {
	db     *database.DB
	scores *services.ScoreService
}

func NewScoreHandler(db *database.DB, scores *services.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		db:     db,
		scores: scores,
	}
}

// ListByTournament returns a tournament's score records with golfers attached
func (h *ScoreHandler) ListByTournament(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid tournament id", err.Error())
		return
	}

	var scores []models.Score
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Golfer").
		Where("tournament_id = ?", id).
		Order("position ASC NULLS LAST").
		Find(&scores).Error; err != nil {
		utils.SendInternalError(c, "Failed to fetch scores")
		return
	}
	utils.SendSuccess(c, scores)
}

type enterScoreRequest struct {
	GolferID     uuid.UUID `json:"golfer_id" binding:"required"`
	Participated bool      `json:"participated"`
	Position     *int      `json:"position"`
	RawScore     *int      `json:"raw_score"`
}

// Enter upserts one golfer's score for a tournament
func (h *ScoreHandler) Enter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid tournament id", err.Error())
		return
	}

	var req enterScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid score payload", err.Error())
		return
	}

	score, err := h.scores.EnterScore(c.Request.Context(), id, services.ScoreInput{
		GolferID:     req.GolferID,
		Participated: req.Participated,
		Position:     req.Position,
		RawScore:     req.RawScore,
	})
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccess(c, score)
}

type bulkScoresRequest struct {
	Scores []enterScoreRequest `json:"scores" binding:"required,min=1,dive"`
}

// BulkEnter upserts many golfers' scores for a tournament in one batch
func (h *ScoreHandler) BulkEnter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid tournament id", err.Error())
		return
	}

	var req bulkScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid scores payload", err.Error())
		return
	}

	inputs := make([]services.ScoreInput, len(req.Scores))
	for i, s := range req.Scores {
		inputs[i] = services.ScoreInput{
			GolferID:     s.GolferID,
			Participated: s.Participated,
			Position:     s.Position,
			RawScore:     s.RawScore,
		}
	}

	records, err := h.scores.BulkEnterScores(c.Request.Context(), id, inputs)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccess(c, gin.H{"saved": len(records), "scores": records})
}
