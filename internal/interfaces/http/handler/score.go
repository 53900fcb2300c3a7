package handler

import (
	"github.com/gin-gonic/gin"

	competencyapp "github.com/competency/backend/internal/application/competency"
)

// ScoreHandler exposes the derived score aggregate
type ScoreHandler struct {
	BaseHandler
	activityService *competencyapp.ActivityService
}

// NewScoreHandler creates a new ScoreHandler
func NewScoreHandler(activityService *competencyapp.ActivityService) *ScoreHandler {
	return &ScoreHandler{
		activityService: activityService,
	}
}

// Get returns the current total, per-category vector and progression state
func (h *ScoreHandler) Get(c *gin.Context) {
	h.Success(c, h.activityService.Scores(c.Request.Context()))
}
