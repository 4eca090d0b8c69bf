package inquiry

import (
	"fmt"

	"handyhub/internal/pkg/apperr"
)

var (
	ErrInquiryNotFound  = fmt.Errorf("%w: inquiry not found", apperr.ErrNotFound)
	ErrAlreadyResolved  = fmt.Errorf("%w: inquiry already resolved", apperr.ErrForbidden)
	ErrTransitionDenied = fmt.Errorf("%w: inquiry transition not allowed", apperr.ErrForbidden)
	ErrStaleStatus      = fmt.Errorf("%w: inquiry status changed concurrently", apperr.ErrConflict)
)
