package auth

import (
	"fmt"

	"handyhub/internal/pkg/apperr"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	ErrRoleNotAllowed     = fmt.Errorf("%w: role must be customer or handyman", apperr.ErrValidation)
	ErrBusinessName       = fmt.Errorf("%w: business_name is required for handymen", apperr.ErrValidation)
)
