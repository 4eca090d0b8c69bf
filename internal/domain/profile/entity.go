package profile

import (
	"time"

	"handyhub/internal/domain"
)

const Table = "profiles"

// Profile is an account. PasswordHash is serialised because the row is
// also written through PostgREST; handlers only ever return Public.
type Profile struct {
	ID           int64       `gorm:"primaryKey" json:"id,omitempty"`
	Email        string      `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string      `gorm:"type:varchar(255);not null" json:"password_hash"`
	FullName     string      `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone        string      `gorm:"type:varchar(50)" json:"phone"`
	Address      string      `gorm:"type:text" json:"address"`
	City         string      `gorm:"type:varchar(100)" json:"city"`
	State        string      `gorm:"type:varchar(100)" json:"state"`
	ZipCode      string      `gorm:"type:varchar(20)" json:"zip_code"`
	AvatarURL    string      `gorm:"type:text" json:"avatar_url"`
	Role         domain.Role `gorm:"type:varchar(20);not null;index" json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (Profile) TableName() string { return Table }

func (p *Profile) Actor() domain.Actor { return domain.Actor{ID: p.ID, Role: p.Role} }

type Public struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Phone     string      `json:"phone,omitempty"`
	Address   string      `json:"address,omitempty"`
	City      string      `json:"city,omitempty"`
	State     string      `json:"state,omitempty"`
	ZipCode   string      `json:"zip_code,omitempty"`
	AvatarURL string      `json:"avatar_url,omitempty"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (p *Profile) Public() Public {
	return Public{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		State:     p.State,
		ZipCode:   p.ZipCode,
		AvatarURL: p.AvatarURL,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Contact is the slice of a profile shown to the other side of a booking.
type Contact struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

func (p *Profile) Contact() Contact {
	return Contact{ID: p.ID, FullName: p.FullName, Email: p.Email, Phone: p.Phone}
}
