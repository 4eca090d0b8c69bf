package profile

import (
	"fmt"

	"handyhub/internal/pkg/apperr"
)

var (
	ErrProfileNotFound = fmt.Errorf("%w: profile not found", apperr.ErrNotFound)
	ErrEmailExists     = fmt.Errorf("%w: email already registered", apperr.ErrConflict)
)
