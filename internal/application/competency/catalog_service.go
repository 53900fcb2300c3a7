package competency

import (
	"github.com/competency/backend/internal/domain/competency"
	"github.com/competency/backend/internal/domain/shared"
)

// CatalogService exposes the read-only catalog to the presentation layer
type CatalogService struct {
	catalog *competency.Catalog
}

// NewCatalogService creates a CatalogService over a loaded catalog
func NewCatalogService(catalog *competency.Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// List returns all catalog items, optionally filtered by category
// (0 means no filter)
func (s *CatalogService) List(category int) []ItemResponse {
	var items []competency.CompetencyItem
	if category > 0 {
		items = s.catalog.ItemsByCategory(category)
	} else {
		items = s.catalog.Items()
	}

	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out
}

// GetByID returns a single catalog item
func (s *CatalogService) GetByID(id int) (*ItemResponse, error) {
	item := s.catalog.FindByID(id)
	if item == nil {
		return nil, shared.ErrNotFound
	}
	resp := ToItemResponse(item)
	return &resp, nil
}
