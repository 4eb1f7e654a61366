package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound also covers networks the caller may not view, so callers
	// cannot probe for the existence of other users' networks.
	ErrNotFound           = errors.New("not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Validationf builds an input error with enough detail to correct the request.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// FromDB maps storage failures onto the error taxonomy. Requires the gorm
// connection to be opened with TranslateError.
func FromDB(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateUsername
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Validationf("dangling reference")
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
}
