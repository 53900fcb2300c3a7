package competency

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityInput carries the user-entered parameters of a submission
// before it has been scored and stored
type ActivityInput struct {
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
	Quantity      decimal.Decimal
	Description   string
	DocumentCount int
}

// ComputePoints converts a catalog item and user input into a point value.
// It is pure and deterministic: the kind-specific formula is applied, the
// result is clamped to the item's cap when one is set, and rounded to one
// decimal place (half-up). Malformed numeric input never produces an error;
// it degrades to zero.
func ComputePoints(item *CompetencyItem, input ActivityInput) decimal.Decimal {
	var points decimal.Decimal

	switch item.CalculationKind {
	case ByDuration:
		points = durationPoints(item, input)
	case ByQuantity:
		points = input.Quantity.Mul(item.PointRate)
	case ByWorkload:
		// Catalog validation guarantees a positive base unit for workload
		// items; the guard keeps the engine total when handed an
		// unvalidated definition.
		if !item.BaseUnit.IsPositive() {
			points = decimal.Zero
		} else {
			points = input.Quantity.Div(item.BaseUnit).Mul(item.PointRate)
		}
	default:
		// Unknown kind: flat award of the point rate
		points = item.PointRate
	}

	if points.IsNegative() {
		points = decimal.Zero
	}
	if item.MaxPoints != nil && points.GreaterThan(*item.MaxPoints) {
		points = *item.MaxPoints
	}

	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative values possible here.
	return points.Round(1)
}

// durationPoints awards pointRate per whole month between the period dates.
// The month difference deliberately ignores day-of-month: Jan 15 to Apr 15
// is three months, and so is Jan 31 to Apr 1. A reversed or incomplete
// period yields zero rather than an error.
func durationPoints(item *CompetencyItem, input ActivityInput) decimal.Decimal {
	if input.PeriodStart == nil || input.PeriodEnd == nil {
		return decimal.Zero
	}
	if input.PeriodEnd.Before(*input.PeriodStart) {
		return decimal.Zero
	}
	months := MonthsBetween(*input.PeriodStart, *input.PeriodEnd)
	return decimal.NewFromInt(int64(months)).Mul(item.PointRate)
}

// MonthsBetween returns the whole-month difference between two dates,
// computed as (endYear-startYear)*12 + (endMonth-startMonth)
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}
