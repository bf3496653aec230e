package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrModelUnavailable is returned when a prediction is requested before a
// trained classifier artifact has been loaded. The API layer surfaces it as a
// server error; a default classification is never substituted.
var ErrModelUnavailable = errors.New("classifier model not loaded")

// APIError represents a standardized error response.
type APIError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for different failure scenarios.
const (
	ErrInvalidInput     = "INVALID_INPUT"
	ErrValidation       = "VALIDATION_ERROR"
	ErrModelNotLoaded   = "MODEL_UNAVAILABLE"
	ErrStoreError       = "STORE_ERROR"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrRateLimit        = "RATE_LIMIT_EXCEEDED"
	ErrPredictionFailed = "PREDICTION_ERROR"
)

// ValidationError identifies a single invalid or missing request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level errors for one request.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %d invalid field(s), first: %s", len(e), e[0].Error())
}

// NewAPIError creates a new APIError with timestamp.
func NewAPIError(code, message, details, requestID string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}
