package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	ServiceID   int64     `json:"service_id" validate:"required,gt=0"`
	BookingDate time.Time `json:"booking_date" validate:"required"`
	Address     string    `json:"address" validate:"required,min=5,max=500"`
	Description string    `json:"description" validate:"max=2000"`
}

type TransitionRequest struct {
	Status Status `json:"status" validate:"required"`
	// HandymanID lets an admin assign a handyman while accepting.
	HandymanID *int64 `json:"handyman_id" validate:"omitempty,gt=0"`
}

type AssignRequest struct {
	HandymanID int64 `json:"handyman_id" validate:"required,gt=0"`
}

type CostRequest struct {
	ActualCost *decimal.Decimal `json:"actual_cost" validate:"required"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=10,max=500"`
}

// ReviewResponse is the public shape of a review. It leaves out the
// customer and the address.
type ReviewResponse struct {
	BookingID int64     `json:"booking_id"`
	ServiceID int64     `json:"service_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewReviewResponse(b Booking) ReviewResponse {
	r := ReviewResponse{BookingID: b.ID, ServiceID: b.ServiceID, UpdatedAt: b.UpdatedAt}
	if b.CustomerRating != nil {
		r.Rating = *b.CustomerRating
	}
	if b.CustomerReview != nil {
		r.Comment = *b.CustomerReview
	}
	return r
}
