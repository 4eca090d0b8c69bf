package booking

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"handyhub/internal/backend"
	"handyhub/internal/domain"
	"handyhub/internal/pkg/apperr"
)

const (
	minCommentLen = 10
	maxCommentLen = 500
)

func isNotFound(err error) bool { return errors.Is(err, apperr.ErrNotFound) }

// Create books a service for a customer. The estimated cost is copied from
// the service's base price at this moment.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateRequest) (*Booking, error) {
	if !actor.IsCustomer() {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only customers can create bookings")
	}
	if req.BookingDate.Before(s.now()) {
		return nil, ErrInvalidDate
	}

	price, err := s.services.BookablePrice(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		CustomerID:    actor.ID,
		ServiceID:     req.ServiceID,
		Status:        StatusPending,
		BookingDate:   req.BookingDate.UTC(),
		Address:       strings.TrimSpace(req.Address),
		Description:   strings.TrimSpace(req.Description),
		EstimatedCost: decimal.NewNullDecimal(price),
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("booking created", "booking_id", b.ID, "user_id", actor.ID, "service_id", b.ServiceID)
	s.afterWrite(ctx, b)
	return b, nil
}

// Get returns a booking the actor may see. Bookings outside the actor's
// scope are reported as missing.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*Booking, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.VisibleTo(actor) {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]Booking, error) {
	return s.store.List(ctx, q)
}

// Assign hands a pending booking to a handyman without accepting it.
func (s *Service) Assign(ctx context.Context, actor domain.Actor, id, handymanID int64) (*Booking, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only admins can assign handymen")
	}
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusPending {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only pending bookings can be assigned, booking %d is %s", b.ID, b.Status)
	}
	if err := s.requireEligible(ctx, handymanID); err != nil {
		return nil, err
	}

	now := s.now()
	ok, err := s.store.CompareAndSetStatus(ctx, b.ID, StatusPending, StatusPending, &handymanID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStaleStatus
	}

	b.HandymanID = &handymanID
	b.UpdatedAt = now
	s.log.Info("booking assigned", "booking_id", b.ID, "handyman_id", handymanID, "user_id", actor.ID)
	s.afterWrite(ctx, b)
	return b, nil
}

// SetActualCost records the final price. Only admins and the assigned
// handyman may do so; the estimate is left untouched.
func (s *Service) SetActualCost(ctx context.Context, actor domain.Actor, id int64, cost decimal.Decimal) (*Booking, error) {
	if cost.IsNegative() {
		return nil, ErrInvalidCost
	}
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsAdmin():
	case actor.IsHandyman() && b.AssignedTo(actor.ID):
	default:
		return nil, ErrNotOwner
	}
	if b.Status == StatusCancelled {
		return nil, apperr.Wrap(apperr.ErrForbidden, "booking %d is cancelled", b.ID)
	}

	actual := decimal.NewNullDecimal(cost.Round(2))
	now := s.now()
	if err := s.store.Update(ctx, b.ID, map[string]any{"actual_cost": actual, "updated_at": now}); err != nil {
		return nil, err
	}
	b.ActualCost = actual
	b.UpdatedAt = now
	s.afterWrite(ctx, b)
	return b, nil
}

// Review stores the customer's rating on a completed booking, once. The
// write only lands while no rating is stored, so of two concurrent reviews
// the second fails with ErrAlreadyReviewed.
func (s *Service) Review(ctx context.Context, actor domain.Actor, id int64, req ReviewRequest) (*Booking, error) {
	comment := strings.TrimSpace(req.Comment)
	if n := utf8.RuneCountInString(comment); n < minCommentLen || n > maxCommentLen {
		return nil, ErrInvalidComment
	}

	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsCustomer() || b.CustomerID != actor.ID {
		return nil, ErrNotOwner
	}
	if b.Status != StatusCompleted {
		return nil, ErrNotCompleted
	}
	if b.Reviewed() {
		return nil, ErrAlreadyReviewed
	}

	rating := req.Rating
	now := s.now()
	ok, err := s.store.SaveReview(ctx, b.ID, rating, comment, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyReviewed
	}
	b.CustomerRating = &rating
	b.CustomerReview = &comment
	b.UpdatedAt = now
	s.afterWrite(ctx, b)
	return b, nil
}

// Reviews lists rated bookings for a handyman, newest first.
func (s *Service) Reviews(ctx context.Context, handymanID int64) ([]Booking, error) {
	rows, err := s.store.List(ctx, ListQuery{
		HandymanID: handymanID,
		Status:     StatusCompleted,
		Order:      backend.Desc("updated_at"),
	})
	if err != nil {
		return nil, err
	}
	out := rows[:0]
	for _, b := range rows {
		if b.Reviewed() {
			out = append(out, b)
		}
	}
	return out, nil
}
