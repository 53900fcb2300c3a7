package competency

import (
	"github.com/competency/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CalculationKind determines which scoring rule applies to an item
type CalculationKind string

const (
	// ByDuration awards points per whole month between two dates
	ByDuration CalculationKind = "duration"
	// ByQuantity awards points per unit submitted
	ByQuantity CalculationKind = "quantity"
	// ByWorkload awards points per workload base unit (hours)
	ByWorkload CalculationKind = "workload"
)

// IsValid returns true if the kind is one of the known calculation rules
func (k CalculationKind) IsValid() bool {
	switch k {
	case ByDuration, ByQuantity, ByWorkload:
		return true
	}
	return false
}

// NumCategories is the fixed number of score categories
const NumCategories = 6

// categoryNames is indexed by category-1 (categories are 1-indexed in the catalog)
var categoryNames = [NumCategories]string{
	"Administrative Activities",
	"Professional Experience",
	"Education and Training",
	"Scientific Production",
	"Event Participation",
	"Teaching Activities",
}

// CategoryName returns the display name for a 1-indexed category.
// Returns an empty string for out-of-range categories.
func CategoryName(category int) string {
	if category < 1 || category > NumCategories {
		return ""
	}
	return categoryNames[category-1]
}

// CompetencyItem is an immutable catalog definition of a scorable activity.
// Items are defined once at catalog load time and looked up by ID; activities
// reference them by value, never by live pointer.
type CompetencyItem struct {
	ID                int              `json:"id"`
	Category          int              `json:"category"`
	Title             string           `json:"title"`
	Description       string           `json:"description,omitempty"`
	CalculationKind   CalculationKind  `json:"calculation_kind"`
	PointRate         decimal.Decimal  `json:"point_rate"`
	BaseUnit          decimal.Decimal  `json:"base_unit,omitempty"`
	MaxPoints         *decimal.Decimal `json:"max_points,omitempty"`
	MeasurementUnit   string           `json:"measurement_unit,omitempty"`
	RequiredDocuments bool             `json:"required_documents"`
	DocumentationNote string           `json:"documentation_note,omitempty"`
}

// HasMaxPoints returns true if the item caps awarded points
func (i *CompetencyItem) HasMaxPoints() bool {
	return i.MaxPoints != nil
}

// Validate checks that an item definition is structurally sound.
// Catalog definitions are validated at the parsing boundary and never
// trusted implicitly downstream.
func (i *CompetencyItem) Validate() error {
	if i.ID <= 0 {
		return shared.NewDomainError("INVALID_ITEM_ID", "Item ID must be a positive integer")
	}
	if i.Category < 1 || i.Category > NumCategories {
		return shared.NewDomainError("INVALID_CATEGORY", "Item category must be between 1 and 6")
	}
	if !i.CalculationKind.IsValid() {
		return shared.NewDomainError("INVALID_CALCULATION_KIND", "Unknown calculation kind: "+string(i.CalculationKind))
	}
	if i.PointRate.IsNegative() {
		return shared.NewDomainError("INVALID_POINT_RATE", "Point rate cannot be negative")
	}
	if i.CalculationKind == ByWorkload && !i.BaseUnit.IsPositive() {
		return shared.NewDomainError("INVALID_BASE_UNIT", "Workload items require a positive base unit")
	}
	if i.MaxPoints != nil && i.MaxPoints.IsNegative() {
		return shared.NewDomainError("INVALID_MAX_POINTS", "Maximum points cannot be negative")
	}
	if i.Title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Item title cannot be empty")
	}
	return nil
}
