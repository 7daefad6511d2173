package models

import (
	"fmt"
	"strings"
)

// FieldViolation describes one invalid or missing reading field.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every violated field found in a reading, so a
// caller can present the complete error report in one pass.
type ValidationError struct {
	Violations []FieldViolation `json:"violations"`
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// CorrelationDomainError reports a correlation that produced a
// non-representable value (NaN or infinite) for the given inputs.
// Recoverable by switching correlation method.
type CorrelationDomainError struct {
	Property Property `json:"property"`
	Method   Method   `json:"method"`
}

func (e *CorrelationDomainError) Error() string {
	return fmt.Sprintf("correlation %s produced a non-representable value for %s", e.Method, e.Property)
}

// RateComputationError reports a missing or invalid PVT dependency during
// rate computation. Never retried automatically: identical inputs
// cannot succeed.
type RateComputationError struct {
	MissingProperty Property `json:"missing_property"`
}

func (e *RateComputationError) Error() string {
	return fmt.Sprintf("rate computation requires %s, which was not computed", e.MissingProperty)
}
