package handyman

import (
	"fmt"

	"handyhub/internal/pkg/apperr"
)

var (
	ErrHandymanNotFound = fmt.Errorf("%w: handyman not found", apperr.ErrNotFound)
	ErrAlreadyExists    = fmt.Errorf("%w: handyman profile already exists", apperr.ErrConflict)
	ErrInvalidRate      = fmt.Errorf("%w: hourly_rate must not be negative", apperr.ErrValidation)
)
