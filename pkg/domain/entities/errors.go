package entities

import "fmt"

// ValidationError indicates a malformed override or configuration payload.
// It aborts the evaluation that received it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// MetricError is a row-scoped computation failure (division by zero from a
// non-positive OEE or zero available hours). The offending row is excluded
// from results and the error is reported as a warning; it never aborts the
// evaluation.
type MetricError struct {
	Article ArticleID `json:"article_id"`
	Center  CenterID  `json:"center_id"`
	Reason  string    `json:"reason"`
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("metric error for %s@%s: %s", e.Article, e.Center, e.Reason)
}
