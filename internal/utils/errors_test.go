package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("count must be non-negative")
	assert.EqualError(t, err, "count must be non-negative")
	assert.True(t, IsValidationError(err))
}

func TestValidationErrorf(t *testing.T) {
	err := NewValidationErrorf("unknown model %q", "quadratic")
	assert.EqualError(t, err, `unknown model "quadratic"`)
	assert.True(t, IsValidationError(err))
}

func TestIsValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("projecting forecast: %w", NewValidationError("history must not be empty"))
	assert.True(t, IsValidationError(err))
	assert.False(t, IsNotFoundError(err))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("forecast snapshot", "abc-123")
	assert.EqualError(t, err, `forecast snapshot "abc-123" not found`)
	assert.True(t, IsNotFoundError(err))
	assert.False(t, IsValidationError(err))
}
