package repositories

import (
	"errors"
	"fmt"

	"pharmahub/internal/apperrors"

	"gorm.io/gorm"
)

// lookupError turns gorm.ErrRecordNotFound into a NotFound error and wraps anything else
// as a persistence failure.
func lookupError(err error, format string, args ...interface{}) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("%s not found", what)
	}
	return apperrors.Persistence(err, "failed to get %s", what)
}
