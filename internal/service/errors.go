package service

import (
	"errors"
	"fmt"

	"github.com/buildcore/vendor-intake/internal/models"
)

// ErrDuplicateVendor is returned when duplicate checking is enabled and the
// submission's tax id already exists on the board.
var ErrDuplicateVendor = errors.New("a vendor with this Tax ID already exists in our system")

// ValidationFailedError carries the full list of field-level violations; the
// HTTP layer returns them all to the caller.
type ValidationFailedError struct {
	Errors []models.ValidationError
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("submission failed %d validation check(s)", len(e.Errors))
}
