package handyman

import "github.com/shopspring/decimal"

// UpdateRequest carries the fields a handyman may edit on their own
// profile. Nil fields are left unchanged.
type UpdateRequest struct {
	BusinessName    *string          `json:"business_name" validate:"omitempty,min=2,max=255"`
	Bio             *string          `json:"bio" validate:"omitempty,max=2000"`
	HourlyRate      *decimal.Decimal `json:"hourly_rate"`
	YearsExperience *int             `json:"years_experience" validate:"omitempty,min=0,max=80"`
	Availability    *string          `json:"availability" validate:"omitempty,max=500"`
}

type VerifyRequest struct {
	// Verified defaults to true so a bare POST verifies.
	Verified *bool `json:"verified"`
}

type ActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
