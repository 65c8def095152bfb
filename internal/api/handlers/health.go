package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fairwayclub/fantasy-golf/internal/services"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
	"github.com/fairwayclub/fantasy-golf/pkg/utils"
)

type HealthHandler struct {
	db        *database.DB
	scheduler *services.Scheduler
}

func NewHealthHandler(db *database.DB, scheduler *services.Scheduler) *HealthHandler {
	return &HealthHandler{
		db:        db,
		scheduler: scheduler,
	}
}

// Check reports service liveness and database reachability
func (h *HealthHandler) Check(c *gin.Context) {
	status := gin.H{
		"status":   "ok",
		"database": "up",
	}

	if err := h.db.Ping(); err != nil {
		status["status"] = "degraded"
		status["database"] = "down"
	}
	if h.scheduler != nil {
		status["scheduler"] = h.scheduler.Status()
	}

	utils.SendSuccess(c, status)
}
