package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"pharmahub/internal/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(apperrors.Validation("customer name is required")))
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(apperrors.NotFound("order %s not found", "X")))
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(errors.New("boom")))
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(nil))

	// Wrapped errors keep their kind
	wrapped := fmt.Errorf("create order: %w", apperrors.Conflict("insufficient stock"))
	assert.True(t, apperrors.Is(wrapped, apperrors.KindConflict))
	assert.False(t, apperrors.Is(wrapped, apperrors.KindNotFound))
}

func TestPersistenceUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.Persistence(cause, "failed to list orders")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to list orders: connection reset", err.Error())
	assert.Equal(t, "persistence", err.Kind.String())
}
