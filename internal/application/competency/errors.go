package competency

// ValidationError is returned, never panicked, when a submission fails
// field validation. Callers surface the per-field reasons and block the
// submission; nothing reaches the scoring engine.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return "activity submission failed validation"
}

// NewValidationError wraps a map of field-level reasons
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
