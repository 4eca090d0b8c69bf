package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"handyhub/internal/domain"
)

const Table = "bookings"

// Booking is one customer request for a service. It doubles as the row
// model: column names are the json names so the same struct decodes from
// gorm and from PostgREST.
type Booking struct {
	ID             int64               `gorm:"primaryKey" json:"id,omitempty"`
	CustomerID     int64               `gorm:"not null;index" json:"customer_id"`
	ServiceID      int64               `gorm:"not null;index" json:"service_id"`
	HandymanID     *int64              `gorm:"index" json:"handyman_id"`
	Status         Status              `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	BookingDate    time.Time           `gorm:"not null" json:"booking_date"`
	Address        string              `gorm:"type:text;not null" json:"address"`
	Description    string              `gorm:"type:text" json:"description"`
	EstimatedCost  decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"estimated_cost"`
	ActualCost     decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"actual_cost"`
	CustomerRating *int                `json:"customer_rating"`
	CustomerReview *string             `gorm:"type:text" json:"customer_review"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func (Booking) TableName() string { return Table }

func (b *Booking) HasHandyman() bool { return b.HandymanID != nil && *b.HandymanID != 0 }

func (b *Booking) AssignedTo(handymanID int64) bool {
	return b.HasHandyman() && *b.HandymanID == handymanID
}

// VisibleTo reports whether a reads this booking: customers their own,
// handymen their assignments, admins everything.
func (b *Booking) VisibleTo(a domain.Actor) bool {
	switch a.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleHandyman:
		return b.AssignedTo(a.ID)
	case domain.RoleCustomer:
		return b.CustomerID == a.ID
	}
	return false
}

func (b *Booking) Reviewed() bool { return b.CustomerRating != nil }
