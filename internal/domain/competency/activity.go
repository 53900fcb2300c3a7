package competency

import (
	"time"

	"github.com/competency/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ActivityStatus represents the review status of an activity
type ActivityStatus string

const (
	StatusPending  ActivityStatus = "pending"
	StatusApproved ActivityStatus = "approved"
	StatusRejected ActivityStatus = "rejected"
)

// IsValid returns true if the status is one of the known review states
func (s ActivityStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Activity is one submitted, scored instance of performing a catalog item.
// Points are frozen at submission time: they are the scoring engine's output
// for the stored input and are never recomputed when the catalog changes.
type Activity struct {
	shared.BaseEntity
	ItemID        int             `json:"item_id"`
	PeriodStart   *time.Time      `json:"period_start,omitempty"`
	PeriodEnd     *time.Time      `json:"period_end,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Description   string          `json:"description"`
	DocumentCount int             `json:"document_count"`
	Points        decimal.Decimal `json:"points"`
	Status        ActivityStatus  `json:"status"`
	ReviewComment string          `json:"review_comment,omitempty"`
}

// NewActivity creates a pending activity from validated input with the
// points already computed by the scoring engine
func NewActivity(itemID int, input ActivityInput, points decimal.Decimal) *Activity {
	quantity := input.Quantity
	if quantity.IsZero() {
		quantity = decimal.NewFromInt(1)
	}
	return &Activity{
		BaseEntity:    shared.NewBaseEntity(),
		ItemID:        itemID,
		PeriodStart:   input.PeriodStart,
		PeriodEnd:     input.PeriodEnd,
		Quantity:      quantity,
		Description:   input.Description,
		DocumentCount: input.DocumentCount,
		Points:        points,
		Status:        StatusPending,
	}
}

// UpdateStatus moves the activity to a new review status and records the
// reviewer's comment. Rejected activities stay in the collection; they are
// merely excluded from score aggregation.
func (a *Activity) UpdateStatus(status ActivityStatus, comment string) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown activity status: "+string(status))
	}
	a.Status = status
	a.ReviewComment = comment
	a.UpdatedAt = time.Now()
	return nil
}

// IsRejected returns true if the activity is excluded from aggregation
func (a *Activity) IsRejected() bool {
	return a.Status == StatusRejected
}
