package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	apiErr := NewAPIError(ErrValidation, "Input validation failed", "age out of range", "req-123")

	assert.Equal(t, "VALIDATION_ERROR: Input validation failed", apiErr.Error())
	assert.Equal(t, "req-123", apiErr.RequestID)
	assert.False(t, apiErr.Timestamp.IsZero())
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("hemoglobin", "must be positive", -1.0)

	assert.Equal(t, "validation error for field 'hemoglobin': must be positive", err.Error())
	assert.Equal(t, -1.0, err.Value)
}

func TestValidationErrorsAggregate(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, NewValidationError("age", "must be between 1 and 120", 0))
	errs = append(errs, NewValidationError("gender", "must be \"Female\" or \"Male\"", ""))

	assert.Contains(t, errs.Error(), "2 invalid field(s)")
	assert.Contains(t, errs.Error(), "age")
}

func TestValidationErrorsAsError(t *testing.T) {
	var err error = ValidationErrors{NewValidationError("age", "required", nil)}

	var validationErrs ValidationErrors
	assert.True(t, errors.As(err, &validationErrs))
	assert.Len(t, validationErrs, 1)
}

func TestErrModelUnavailableIsSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("prediction failed"), ErrModelUnavailable)
	assert.ErrorIs(t, wrapped, ErrModelUnavailable)
}
