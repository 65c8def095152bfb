package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fairwayclub/fantasy-golf/internal/models"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
	"github.com/fairwayclub/fantasy-golf/pkg/utils"
)

type SeasonHandler struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewSeasonHandler(db *database.DB, logger *logrus.Logger) *SeasonHandler {
	return &SeasonHandler{
		db:     db,
		logger: logger,
	}
}

// List returns every season, newest first
func (h *SeasonHandler) List(c *gin.Context) {
	var seasons []models.Season
	if err := h.db.WithContext(c.Request.Context()).Order("name DESC").Find(&seasons).Error; err != nil {
		utils.SendInternalError(c, "Failed to fetch seasons")
		return
	}
	utils.SendSuccess(c, seasons)
}

type seasonRequest struct {
	Name      string               `json:"name" binding:"required"`
	StartDate time.Time            `json:"start_date" binding:"required"`
	EndDate   time.Time            `json:"end_date" binding:"required"`
	Status    *models.SeasonStatus `json:"status"`
}

// Create adds a season in setup state
func (h *SeasonHandler) Create(c *gin.Context) {
	var req seasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid season payload", err.Error())
		return
	}

	season := models.Season{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    models.SeasonSetup,
	}
	if req.Status != nil {
		season.Status = *req.Status
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&season).Error; err != nil {
		utils.SendConflict(c, "Season already exists")
		return
	}
	utils.SendSuccess(c, season)
}

// Update modifies a season's dates and status
func (h *SeasonHandler) Update(c *gin.Context) {
	var req seasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid season payload", err.Error())
		return
	}

	ctx := c.Request.Context()
	var season models.Season
	if err := h.db.WithContext(ctx).First(&season, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendNotFound(c, "Season not found")
		return
	}

	season.Name = req.Name
	season.StartDate = req.StartDate
	season.EndDate = req.EndDate
	if req.Status != nil {
		season.Status = *req.Status
	}

	if err := h.db.WithContext(ctx).Save(&season).Error; err != nil {
		utils.SendInternalError(c, "Failed to update season")
		return
	}
	utils.SendSuccess(c, season)
}

// Activate makes one season active and deactivates every other
func (h *SeasonHandler) Activate(c *gin.Context) {
	ctx := c.Request.Context()
	var season models.Season
	if err := h.db.WithContext(ctx).First(&season, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendNotFound(c, "Season not found")
		return
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Season{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&season).Updates(map[string]interface{}{
			"is_active": true,
			"status":    models.SeasonActive,
		}).Error
	})
	if err != nil {
		utils.SendInternalError(c, "Failed to activate season")
		return
	}

	h.logger.WithField("season", season.Name).Info("Season activated")
	utils.SendSuccess(c, season)
}
