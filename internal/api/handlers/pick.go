package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fairwayclub/fantasy-golf/internal/api/middleware"
	"github.com/fairwayclub/fantasy-golf/internal/services"
	"github.com/fairwayclub/fantasy-golf/pkg/utils"
)

type PickHandler struct {
	picks    *services.PickService
	settings *services.SettingsService
}

func NewPickHandler(picks *services.PickService, settings *services.SettingsService) *PickHandler {
	return &PickHandler{
		picks:    picks,
		settings: settings,
	}
}

// resolveSeason prefers ?season, falling back to the active season
func (h *PickHandler) resolveSeason(c *gin.Context) (int, bool) {
	if seasonStr := c.Query("season"); seasonStr != "" {
		season, err := strconv.Atoi(seasonStr)
		if err != nil {
			utils.SendValidationError(c, "Invalid season", "expected ?season=YYYY")
			return 0, false
		}
		return season, true
	}
	season, err := h.settings.CurrentSeason(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to resolve current season")
		return 0, false
	}
	return season, true
}

// GetMyTeam returns the caller's team with aggregated scores
func (h *PickHandler) GetMyTeam(c *gin.Context) {
	season, ok := h.resolveSeason(c)
	if !ok {
		return
	}

	team, err := h.picks.GetTeam(c.Request.Context(), middleware.UserID(c), season)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccess(c, team)
}

type saveTeamRequest struct {
	GolferIDs []string `json:"golfer_ids" binding:"required"`
	CaptainID *string  `json:"captain_id"`
}

// SaveMyTeam creates or replaces the caller's team under the current league
// rules.
func (h *PickHandler) SaveMyTeam(c *gin.Context) {
	season, ok := h.resolveSeason(c)
	if !ok {
		return
	}

	var req saveTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid team payload", err.Error())
		return
	}

	ctx := c.Request.Context()
	rules, err := h.settings.LeagueRules(ctx)
	if err != nil {
		utils.SendInternalError(c, "Failed to load league rules")
		return
	}

	pick, err := h.picks.SaveTeam(ctx, middleware.UserID(c), season, req.GolferIDs, req.CaptainID, rules)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccess(c, pick)
}

// TransferHistory returns the caller's resolved transfer rows
func (h *PickHandler) TransferHistory(c *gin.Context) {
	season, ok := h.resolveSeason(c)
	if !ok {
		return
	}

	history, err := h.picks.TransferHistory(c.Request.Context(), middleware.UserID(c), season)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccess(c, history)
}
