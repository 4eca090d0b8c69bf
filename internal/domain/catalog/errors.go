package catalog

import (
	"fmt"

	"handyhub/internal/pkg/apperr"
)

var (
	ErrServiceNotFound = fmt.Errorf("%w: service not found", apperr.ErrNotFound)
	ErrInvalidPrice    = fmt.Errorf("%w: base_price must not be negative", apperr.ErrValidation)
)
