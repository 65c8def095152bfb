package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fairwayclub/fantasy-golf/internal/models"
	"github.com/fairwayclub/fantasy-golf/internal/services"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
	"github.com/fairwayclub/fantasy-golf/pkg/utils"
)

type GolferHandler struct {
	db      *database.DB
	pricing *services.PricingService
	logger  *logrus.Logger
}

func NewGolferHandler(db *database.DB, pricing *services.PricingService, logger *logrus.Logger) *GolferHandler {
	return &GolferHandler{
		db:      db,
		pricing: pricing,
		logger:  logger,
	}
}

// List returns golfers, active-only unless ?include_inactive=true
func (h *GolferHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Order("last_name ASC, first_name ASC")
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var golfers []models.Golfer
	if err := query.Find(&golfers).Error; err != nil {
		utils.SendInternalError(c, "Failed to fetch golfers")
		return
	}
	utils.SendSuccess(c, golfers)
}

// Get returns one golfer by id
func (h *GolferHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid golfer id", err.Error())
		return
	}

	var golfer models.Golfer
	if err := h.db.WithContext(c.Request.Context()).First(&golfer, "id = ?", id).Error; err != nil {
		utils.SendNotFound(c, "Golfer not found")
		return
	}
	utils.SendSuccess(c, golfer)
}

type golferRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Price     *int64 `json:"price"`
	IsActive  *bool  `json:"is_active"`
}

// Create adds a golfer to the field
func (h *GolferHandler) Create(c *gin.Context) {
	var req golferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid golfer payload", err.Error())
		return
	}

	golfer := models.Golfer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
	}
	if req.Price != nil {
		golfer.Price = *req.Price
	}
	if req.IsActive != nil {
		golfer.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&golfer).Error; err != nil {
		utils.SendInternalError(c, "Failed to create golfer")
		return
	}
	utils.SendSuccess(c, golfer)
}

// Update modifies a golfer's editable fields
func (h *GolferHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid golfer id", err.Error())
		return
	}

	var req golferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid golfer payload", err.Error())
		return
	}

	ctx := c.Request.Context()
	var golfer models.Golfer
	if err := h.db.WithContext(ctx).First(&golfer, "id = ?", id).Error; err != nil {
		utils.SendNotFound(c, "Golfer not found")
		return
	}

	golfer.FirstName = req.FirstName
	golfer.LastName = req.LastName
	if req.Price != nil {
		golfer.Price = *req.Price
	}
	if req.IsActive != nil {
		golfer.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(ctx).Save(&golfer).Error; err != nil {
		utils.SendInternalError(c, "Failed to update golfer")
		return
	}
	utils.SendSuccess(c, golfer)
}

// Delete removes a golfer. Golfers with score records are deactivated instead
// so historic standings stay intact.
func (h *GolferHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid golfer id", err.Error())
		return
	}

	ctx := c.Request.Context()
	var golfer models.Golfer
	if err := h.db.WithContext(ctx).First(&golfer, "id = ?", id).Error; err != nil {
		utils.SendNotFound(c, "Golfer not found")
		return
	}

	var scoreCount int64
	if err := h.db.WithContext(ctx).Model(&models.Score{}).Where("golfer_id = ?", id).Count(&scoreCount).Error; err != nil {
		utils.SendInternalError(c, "Failed to check golfer scores")
		return
	}

	if scoreCount > 0 {
		if err := h.db.WithContext(ctx).Model(&golfer).Update("is_active", false).Error; err != nil {
			utils.SendInternalError(c, "Failed to deactivate golfer")
			return
		}
		h.logger.WithField("golfer", golfer.FullName()).Info("Golfer deactivated (has scores)")
		utils.SendSuccess(c, gin.H{"deactivated": true})
		return
	}

	if err := h.db.WithContext(ctx).Delete(&golfer).Error; err != nil {
		utils.SendInternalError(c, "Failed to delete golfer")
		return
	}
	utils.SendSuccess(c, gin.H{"deleted": true})
}

// RecalculatePrices reprices the whole field for a season
func (h *GolferHandler) RecalculatePrices(c *gin.Context) {
	season, err := strconv.Atoi(c.Query("season"))
	if err != nil {
		utils.SendValidationError(c, "Invalid or missing season", "expected ?season=YYYY")
		return
	}

	result, err := h.pricing.CalculateGolferPrices(c.Request.Context(), season)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccess(c, result)
}
