package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	competencyapp "github.com/competency/backend/internal/application/competency"
)

// CatalogHandler exposes the read-only competency item catalog
type CatalogHandler struct {
	BaseHandler
	catalogService *competencyapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *competencyapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// List returns all catalog items, optionally filtered by category
func (h *CatalogHandler) List(c *gin.Context) {
	category := 0
	if raw := c.Query("category"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Category must be a positive integer")
			return
		}
		category = parsed
	}

	h.Success(c, h.catalogService.List(category))
}

// GetByID returns a single catalog item
func (h *CatalogHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.catalogService.GetByID(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}
