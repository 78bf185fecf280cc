package types

import "fmt"

// Error kinds surfaced by the API
const (
	KindValidation       = "validation"
	KindConstraint       = "constraint"
	KindNotFound         = "not_found"
	KindMissingParameter = "missing_parameter"
	KindForbidden        = "forbidden"
)

// APIError is a typed error carrying the HTTP status, the error kind, and
// optional field-level violation details for validation failures.
type APIError struct {
	Code       int               `json:"code"`
	Message    string            `json:"message"`
	Kind       string            `json:"kind"`
	Violations map[string]string `json:"violations,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s [kind: %s]", e.Code, e.Message, e.Kind)
}

// NewValidationError builds a 400 validation error with field details
func NewValidationError(violations map[string]string) *APIError {
	return &APIError{
		Code:       400,
		Message:    "Validation failed",
		Kind:       KindValidation,
		Violations: violations,
	}
}

// NewConstraintError builds a 409 uniqueness/foreign-key violation error
func NewConstraintError(message string) *APIError {
	return &APIError{Code: 409, Message: message, Kind: KindConstraint}
}

// NewNotFoundError builds a 404 error for a missing entity
func NewNotFoundError(message string) *APIError {
	return &APIError{Code: 404, Message: message, Kind: KindNotFound}
}

// NewForbiddenError builds a 403 error for a failed authorization check
func NewForbiddenError(message string) *APIError {
	return &APIError{Code: 403, Message: message, Kind: KindForbidden}
}

// NewMissingParameterError builds a 400 error for an absent required query
// parameter on a parameterized aggregate endpoint
func NewMissingParameterError(param string) *APIError {
	return &APIError{
		Code:    400,
		Message: fmt.Sprintf("Missing required parameter: %s", param),
		Kind:    KindMissingParameter,
	}
}
