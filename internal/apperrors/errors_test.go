package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Unwrap(t *testing.T) {
	wrapped := fmt.Errorf("%w: payment p-1", ErrPaymentWriteFailed)
	appErr := NewAppError(500, "failed to insert payment", wrapped)

	assert.True(t, errors.Is(appErr, ErrPaymentWriteFailed))
	assert.Contains(t, appErr.Error(), "failed to insert payment")
	assert.Contains(t, appErr.Error(), "payment p-1")
}

func TestAppError_NoWrappedError(t *testing.T) {
	appErr := NewAppError(400, "bad input", nil)
	assert.Equal(t, "bad input", appErr.Error())
	assert.Nil(t, errors.Unwrap(appErr))
}
