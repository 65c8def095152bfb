package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fairwayclub/fantasy-golf/internal/services"
	"github.com/fairwayclub/fantasy-golf/pkg/utils"
)

type LeaderboardHandler struct {
	leaderboards *services.LeaderboardService
	settings     *services.SettingsService
}

func NewLeaderboardHandler(leaderboards *services.LeaderboardService, settings *services.SettingsService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboards: leaderboards,
		settings:     settings,
	}
}

func (h *LeaderboardHandler) resolveSeason(c *gin.Context) (int, bool) {
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

// Get returns the simple season standings
func (h *LeaderboardHandler) Get(c *gin.Context) {
	season, ok := h.resolveSeason(c)
	if !ok {
		return
	}

	board, err := h.leaderboards.GetLeaderboard(c.Request.Context(), season)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccess(c, board)
}

// GetFull returns week, month and season standings with movement
func (h *LeaderboardHandler) GetFull(c *gin.Context) {
	season, ok := h.resolveSeason(c)
	if !ok {
		return
	}

	board, err := h.leaderboards.GetFullLeaderboard(c.Request.Context(), season)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccess(c, board)
}

// GetTournament returns standings built from one tournament's scores only
func (h *LeaderboardHandler) GetTournament(c *gin.Context) {
	tournamentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid tournament id", err.Error())
		return
	}

	season, ok := h.resolveSeason(c)
	if !ok {
		return
	}

	board, err := h.leaderboards.GetTournamentLeaderboard(c.Request.Context(), tournamentID, season)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccess(c, board)
}
