package competency

import "strings"

// Validation field names as they appear in field-level error maps
const (
	FieldItem        = "item"
	FieldPeriodStart = "period_start"
	FieldPeriodEnd   = "period_end"
	FieldDateRange   = "date_range"
	FieldQuantity    = "quantity"
	FieldDescription = "description"
	FieldDocuments   = "documents"
)

// ValidationResult carries one reason per failing field.
// An empty result means the submission may be scored and stored.
type ValidationResult struct {
	FieldErrors map[string]string
}

// Valid returns true when no field failed validation
func (r ValidationResult) Valid() bool {
	return len(r.FieldErrors) == 0
}

func (r *ValidationResult) fail(field, reason string) {
	if r.FieldErrors == nil {
		r.FieldErrors = make(map[string]string)
	}
	r.FieldErrors[field] = reason
}

// Validate checks an activity submission against its item's required fields.
// All rules are checked independently; a submission can carry several
// simultaneous field errors.
//
// Note: at least one supporting document is required for every submission,
// regardless of the item's RequiredDocuments flag. The flag exists in the
// catalog but is not enforced differentially.
func Validate(item *CompetencyItem, input ActivityInput) ValidationResult {
	var result ValidationResult

	if item == nil {
		result.fail(FieldItem, "A competency item must be selected")
	}

	if item != nil {
		switch item.CalculationKind {
		case ByDuration:
			if input.PeriodStart == nil {
				result.fail(FieldPeriodStart, "Start date is required")
			}
			if input.PeriodEnd == nil {
				result.fail(FieldPeriodEnd, "End date is required")
			}
			if input.PeriodStart != nil && input.PeriodEnd != nil &&
				input.PeriodEnd.Before(*input.PeriodStart) {
				result.fail(FieldDateRange, "End date must not precede start date")
			}
		case ByQuantity, ByWorkload:
			if !input.Quantity.IsPositive() {
				result.fail(FieldQuantity, "Quantity must be positive")
			}
		}
	}

	if strings.TrimSpace(input.Description) == "" {
		result.fail(FieldDescription, "Description is required")
	}

	if input.DocumentCount < 1 {
		result.fail(FieldDocuments, "At least one supporting document is required")
	}

	return result
}
