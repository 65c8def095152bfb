package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fairwayclub/fantasy-golf/internal/services"
	"github.com/fairwayclub/fantasy-golf/pkg/utils"
)

type SettingHandler struct {
	settings *services.SettingsService
}

func NewSettingHandler(settings *services.SettingsService) *SettingHandler {
	return &SettingHandler{settings: settings}
}

// List returns the stored settings plus the assembled league rules
func (h *SettingHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.settings.List(ctx)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch settings")
		return
	}
	rules, err := h.settings.LeagueRules(ctx)
	if err != nil {
		utils.SendInternalError(c, "Failed to assemble league rules")
		return
	}
	utils.SendSuccess(c, gin.H{"settings": rows, "rules": rules})
}

type setSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// Set upserts one setting by key
func (h *SettingHandler) Set(c *gin.Context) {
	var req setSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid setting payload", err.Error())
		return
	}

	if err := h.settings.Set(c.Request.Context(), c.Param("key"), req.Value); err != nil {
		utils.SendInternalError(c, "Failed to update setting")
		return
	}
	utils.SendSuccess(c, gin.H{"key": c.Param("key"), "value": req.Value})
}
