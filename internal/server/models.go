package server

import (
	"handyhub/internal/domain/booking"
	"handyhub/internal/domain/catalog"
	"handyhub/internal/domain/handyman"
	"handyhub/internal/domain/inquiry"
	"handyhub/internal/domain/profile"
)

// Models lists the row types AutoMigrate creates, parents first.
func Models() []any {
	return []any{
		&profile.Profile{},
		&handyman.Profile{},
		&catalog.Service{},
		&booking.Booking{},
		&inquiry.Inquiry{},
	}
}
