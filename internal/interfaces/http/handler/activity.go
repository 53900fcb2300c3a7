package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	competencyapp "github.com/competency/backend/internal/application/competency"
	"github.com/competency/backend/internal/interfaces/http/middleware"
)

// ActivityHandler handles activity submission, review and removal
type ActivityHandler struct {
	BaseHandler
	activityService *competencyapp.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *competencyapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// RegisterActivityRequest represents a new activity submission
type RegisterActivityRequest struct {
	ItemID        int             `json:"item_id" binding:"required,gt=0"`
	PeriodStart   *string         `json:"period_start"`
	PeriodEnd     *string         `json:"period_end"`
	Quantity      decimal.Decimal `json:"quantity"`
	Description   string          `json:"description"`
	DocumentCount int             `json:"document_count"`
}

// UpdateStatusRequest represents a review decision
type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required,oneof=pending approved rejected"`
	Comment string `json:"comment"`
}

// dateLayouts are the accepted period date formats, most specific first
var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01"}

// parseDate parses a period boundary. Month-granularity input is accepted
// because duration scoring only reads year and month.
func parseDate(raw *string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// List returns all stored activities in submission order
func (h *ActivityHandler) List(c *gin.Context) {
	h.Success(c, h.activityService.List(c.Request.Context()))
}

// Register validates, scores and stores a new activity
func (h *ActivityHandler) Register(c *gin.Context) {
	var req RegisterActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	start, ok := parseDate(req.PeriodStart)
	if !ok {
		h.BadRequest(c, "Invalid period_start date format")
		return
	}
	end, ok := parseDate(req.PeriodEnd)
	if !ok {
		h.BadRequest(c, "Invalid period_end date format")
		return
	}

	activity, err := h.activityService.Register(c.Request.Context(), competencyapp.RegisterActivityRequest{
		ItemID:        req.ItemID,
		PeriodStart:   start,
		PeriodEnd:     end,
		Quantity:      req.Quantity,
		Description:   req.Description,
		DocumentCount: req.DocumentCount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, activity)
}

// UpdateStatus applies a review decision to an activity
func (h *ActivityHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	err := h.activityService.UpdateStatus(c.Request.Context(), c.Param("id"), competencyapp.UpdateStatusRequest{
		Status:  req.Status,
		Comment: req.Comment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete removes an activity from the collection
func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.activityService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
