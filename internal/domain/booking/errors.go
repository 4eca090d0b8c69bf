package booking

import (
	"fmt"

	"handyhub/internal/pkg/apperr"
)

var (
	ErrBookingNotFound     = fmt.Errorf("%w: booking not found", apperr.ErrNotFound)
	ErrTransitionDenied    = fmt.Errorf("%w: transition not allowed", apperr.ErrForbidden)
	ErrNotAssigned         = fmt.Errorf("%w: booking is not assigned to you", apperr.ErrForbidden)
	ErrHandymanNotEligible = fmt.Errorf("%w: handyman must be verified and active", apperr.ErrForbidden)
	ErrHandymanRequired    = fmt.Errorf("%w: handyman required", apperr.ErrForbidden)
	ErrNotOwner            = fmt.Errorf("%w: not your booking", apperr.ErrForbidden)
	ErrStaleStatus         = fmt.Errorf("%w: booking status changed concurrently", apperr.ErrConflict)
	ErrAlreadyReviewed     = fmt.Errorf("%w: booking already reviewed", apperr.ErrConflict)
	ErrNotCompleted        = fmt.Errorf("%w: only completed bookings can be reviewed", apperr.ErrForbidden)
	ErrInvalidDate         = fmt.Errorf("%w: booking_date must be in the future", apperr.ErrValidation)
	ErrInvalidCost         = fmt.Errorf("%w: cost must not be negative", apperr.ErrValidation)
	ErrInvalidComment      = fmt.Errorf("%w: comment must be 10 to 500 characters", apperr.ErrValidation)
)
