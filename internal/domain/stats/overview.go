// Package stats derives the admin overview from the bookings, handymen
// and inquiries tables. Nothing here is stored; an optional cache holds the
// last computed overview until the next booking write invalidates it.
package stats

import (
	"time"

	"handyhub/internal/domain/booking"
)

type Overview struct {
	TotalHandymen   int64                    `json:"total_handymen"`
	TotalBookings   int64                    `json:"total_bookings"`
	PendingBookings int64                    `json:"pending_bookings"`
	TotalInquiries  int64                    `json:"total_inquiries"`
	ByStatus        map[booking.Status]int64 `json:"by_status"`
	GeneratedAt     time.Time                `json:"generated_at"`
}
