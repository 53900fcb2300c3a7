package competency

import (
	"time"

	"github.com/competency/backend/internal/domain/competency"
	"github.com/shopspring/decimal"
)

// RegisterActivityRequest carries a new activity submission
type RegisterActivityRequest struct {
	ItemID        int
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
	Quantity      decimal.Decimal
	Description   string
	DocumentCount int
}

// UpdateStatusRequest carries a review decision for an activity
type UpdateStatusRequest struct {
	Status  string
	Comment string
}

// ActivityResponse is the read model for a stored activity.
// ItemTitle and CategoryName are resolved against the catalog at read time;
// an orphaned reference is labeled rather than failing.
type ActivityResponse struct {
	ID            string          `json:"id"`
	ItemID        int             `json:"item_id"`
	ItemTitle     string          `json:"item_title"`
	Category      int             `json:"category,omitempty"`
	CategoryName  string          `json:"category_name,omitempty"`
	PeriodStart   *time.Time      `json:"period_start,omitempty"`
	PeriodEnd     *time.Time      `json:"period_end,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Description   string          `json:"description"`
	DocumentCount int             `json:"document_count"`
	Points        decimal.Decimal `json:"points"`
	Status        string          `json:"status"`
	ReviewComment string          `json:"review_comment,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemNotFoundLabel is displayed for activities whose catalog item
// no longer resolves
const ItemNotFoundLabel = "Item not found"

// ToActivityResponse converts a domain activity, resolving its item
// against the catalog
func ToActivityResponse(activity *competency.Activity, catalog *competency.Catalog) ActivityResponse {
	resp := ActivityResponse{
		ID:            activity.ID.String(),
		ItemID:        activity.ItemID,
		ItemTitle:     ItemNotFoundLabel,
		PeriodStart:   activity.PeriodStart,
		PeriodEnd:     activity.PeriodEnd,
		Quantity:      activity.Quantity,
		Description:   activity.Description,
		DocumentCount: activity.DocumentCount,
		Points:        activity.Points,
		Status:        string(activity.Status),
		ReviewComment: activity.ReviewComment,
		CreatedAt:     activity.CreatedAt,
		UpdatedAt:     activity.UpdatedAt,
	}
	if item := catalog.FindByID(activity.ItemID); item != nil {
		resp.ItemTitle = item.Title
		resp.Category = item.Category
		resp.CategoryName = competency.CategoryName(item.Category)
	}
	return resp
}

// ItemResponse is the read model for a catalog item
type ItemResponse struct {
	ID                int              `json:"id"`
	Category          int              `json:"category"`
	CategoryName      string           `json:"category_name"`
	Title             string           `json:"title"`
	Description       string           `json:"description,omitempty"`
	CalculationKind   string           `json:"calculation_kind"`
	PointRate         decimal.Decimal  `json:"point_rate"`
	BaseUnit          *decimal.Decimal `json:"base_unit,omitempty"`
	MaxPoints         *decimal.Decimal `json:"max_points,omitempty"`
	MeasurementUnit   string           `json:"measurement_unit,omitempty"`
	RequiredDocuments bool             `json:"required_documents"`
	DocumentationNote string           `json:"documentation_note,omitempty"`
}

// ToItemResponse converts a catalog item to its read model
func ToItemResponse(item *competency.CompetencyItem) ItemResponse {
	resp := ItemResponse{
		ID:                item.ID,
		Category:          item.Category,
		CategoryName:      competency.CategoryName(item.Category),
		Title:             item.Title,
		Description:       item.Description,
		CalculationKind:   string(item.CalculationKind),
		PointRate:         item.PointRate,
		MaxPoints:         item.MaxPoints,
		MeasurementUnit:   item.MeasurementUnit,
		RequiredDocuments: item.RequiredDocuments,
		DocumentationNote: item.DocumentationNote,
	}
	if item.CalculationKind == competency.ByWorkload {
		baseUnit := item.BaseUnit
		resp.BaseUnit = &baseUnit
	}
	return resp
}

// CategoryScore is one entry of the per-category score vector
type CategoryScore struct {
	Category int             `json:"category"`
	Name     string          `json:"name"`
	Score    decimal.Decimal `json:"score"`
}

// ScoreResponse is the read model for the derived score aggregate
type ScoreResponse struct {
	Total                decimal.Decimal `json:"total"`
	PerCategory          []CategoryScore `json:"per_category"`
	NextProgressionScore decimal.Decimal `json:"next_progression_score"`
	ProgressPercent      decimal.Decimal `json:"progress_percent"`
}

// ToScoreResponse converts a score aggregate, attaching category labels and
// progress toward the progression threshold
func ToScoreResponse(agg competency.ScoreAggregate, target decimal.Decimal) ScoreResponse {
	resp := ScoreResponse{
		Total:                agg.Total,
		PerCategory:          make([]CategoryScore, competency.NumCategories),
		NextProgressionScore: target,
		ProgressPercent:      decimal.Zero,
	}
	for i, score := range agg.PerCategory {
		resp.PerCategory[i] = CategoryScore{
			Category: i + 1,
			Name:     competency.CategoryName(i + 1),
			Score:    score,
		}
	}
	if target.IsPositive() {
		resp.ProgressPercent = agg.Total.Div(target).Mul(decimal.NewFromInt(100)).Round(1)
	}
	return resp
}
