package competency

import (
	"fmt"

	"github.com/competency/backend/internal/domain/shared"
)

// Catalog is the immutable, read-only set of competency item definitions.
// It is loaded once at startup and indexed by item ID.
type Catalog struct {
	items []CompetencyItem
	byID  map[int]*CompetencyItem
}

// NewCatalog builds a catalog from item definitions, validating each one.
// Duplicate IDs are rejected. Item order is preserved for listing.
func NewCatalog(items []CompetencyItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]CompetencyItem, len(items)),
		byID:  make(map[int]*CompetencyItem, len(items)),
	}
	copy(c.items, items)

	for idx := range c.items {
		item := &c.items[idx]
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog item %d: %w", item.ID, err)
		}
		if _, exists := c.byID[item.ID]; exists {
			return nil, shared.NewDomainError("DUPLICATE_ITEM_ID",
				fmt.Sprintf("Duplicate catalog item ID %d", item.ID))
		}
		c.byID[item.ID] = item
	}

	return c, nil
}

// FindByID looks up an item by its ID.
// Returns nil when the ID does not resolve; callers must degrade
// gracefully (orphaned activity references are a supported state).
func (c *Catalog) FindByID(id int) *CompetencyItem {
	return c.byID[id]
}

// Items returns the items in definition order
func (c *Catalog) Items() []CompetencyItem {
	out := make([]CompetencyItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemsByCategory returns the items belonging to a 1-indexed category,
// preserving definition order
func (c *Catalog) ItemsByCategory(category int) []CompetencyItem {
	var out []CompetencyItem
	for _, item := range c.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Len returns the number of items in the catalog
func (c *Catalog) Len() int {
	return len(c.items)
}
