package inquiry

import (
	"slices"
	"time"
)

const Table = "inquiries"

// Status represents inquiry status
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

var Statuses = []Status{StatusNew, StatusInProgress, StatusResolved}

func (s Status) Valid() bool { return slices.Contains(Statuses, s) }

// transitions lists the permitted moves. resolved is terminal.
var transitions = map[Status][]Status{
	StatusNew:        {StatusInProgress, StatusResolved},
	StatusInProgress: {StatusResolved},
}

func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// Inquiry is a contact-form submission.
type Inquiry struct {
	ID      int64  `gorm:"primaryKey" json:"id,omitempty"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Email   string `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone   string `gorm:"type:varchar(50)" json:"phone"`
	Subject string `gorm:"type:varchar(255);not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
	Status  Status `gorm:"type:varchar(20);not null;default:new;index" json:"status"`

	// Metadata
	IPAddress string    `gorm:"type:varchar(64)" json:"ip_address,omitempty"`
	UserAgent string    `gorm:"type:text" json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Inquiry) TableName() string { return Table }

func (i *Inquiry) IsResolved() bool {
	return i.Status == StatusResolved
}
