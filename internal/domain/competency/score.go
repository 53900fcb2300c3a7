package competency

import "github.com/shopspring/decimal"

// ScoreAggregate is the derived score view: total points and a fixed-length
// per-category vector. It is recomputed from scratch after every change to
// the activity collection and never mutated independently.
type ScoreAggregate struct {
	Total       decimal.Decimal
	PerCategory [NumCategories]decimal.Decimal
}

// ZeroScoreAggregate returns an aggregate with all entries at zero
func ZeroScoreAggregate() ScoreAggregate {
	agg := ScoreAggregate{Total: decimal.Zero}
	for i := range agg.PerCategory {
		agg.PerCategory[i] = decimal.Zero
	}
	return agg
}

// Recompute derives the score aggregate from the current activity set.
// Rejected activities are skipped. An activity whose item no longer resolves
// in the catalog contributes zero to both the total and the category vector,
// so the conservation invariant (total equals the sum of the per-category
// entries) always holds.
//
// The catalog is 1-indexed by category while the vector is 0-indexed; the
// offset is a stable convention, not a bug.
func Recompute(activities []Activity, catalog *Catalog) ScoreAggregate {
	agg := ZeroScoreAggregate()
	for i := range activities {
		activity := &activities[i]
		if activity.IsRejected() {
			continue
		}
		item := catalog.FindByID(activity.ItemID)
		if item == nil {
			continue
		}
		idx := item.Category - 1
		if idx < 0 || idx >= NumCategories {
			continue
		}
		agg.Total = agg.Total.Add(activity.Points)
		agg.PerCategory[idx] = agg.PerCategory[idx].Add(activity.Points)
	}
	return agg
}
