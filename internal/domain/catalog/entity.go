package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

const Table = "services"

// Service is an offering customers can book. Inactive services stay in
// the catalog for admins but are neither listed publicly nor bookable.
type Service struct {
	ID          int64           `gorm:"primaryKey" json:"id,omitempty"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Category    string          `gorm:"type:varchar(100);not null;index" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"base_price"`
	ImageURL    string          `gorm:"type:text" json:"image_url"`
	IsActive    bool            `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Service) TableName() string { return Table }
