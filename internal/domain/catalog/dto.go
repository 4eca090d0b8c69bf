package catalog

import "github.com/shopspring/decimal"

// UpsertRequest is the admin payload for create and full update.
type UpsertRequest struct {
	Name        string           `json:"name" validate:"required,min=2,max=255"`
	Category    string           `json:"category" validate:"required,max=100"`
	Description string           `json:"description" validate:"max=2000"`
	BasePrice   *decimal.Decimal `json:"base_price" validate:"required"`
	ImageURL    string           `json:"image_url" validate:"omitempty,url"`
	// IsActive defaults to true when omitted.
	IsActive *bool `json:"is_active"`
}

func (r *UpsertRequest) active() bool {
	return r.IsActive == nil || *r.IsActive
}
