package handyman

import (
	"time"

	"github.com/shopspring/decimal"
)

const Table = "handyman_profiles"

// Profile is the business side of a handyman account. Its ID is the
// account's profile id.
//
// Rating and TotalJobs are maintained outside this service and are only
// read here.
type Profile struct {
	ID              int64               `gorm:"primaryKey;autoIncrement:false" json:"id"`
	BusinessName    string              `gorm:"type:varchar(255);not null" json:"business_name"`
	Bio             string              `gorm:"type:text" json:"bio"`
	HourlyRate      decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"hourly_rate"`
	YearsExperience int                 `gorm:"not null" json:"years_experience"`
	Availability    string              `gorm:"type:text" json:"availability"`
	IsVerified      bool                `gorm:"not null;index" json:"is_verified"`
	IsActive        bool                `gorm:"not null;index" json:"is_active"`
	Rating          decimal.Decimal     `gorm:"type:numeric(3,2);not null" json:"rating"`
	TotalJobs       int                 `gorm:"not null" json:"total_jobs"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func (Profile) TableName() string { return Table }

// Eligible handymen may act on bookings assigned to them.
func (p *Profile) Eligible() bool { return p.IsVerified && p.IsActive }
