// Package dashboard composes what each role sees. The role is resolved
// once into a View; everything after that dispatches on the variant.
package dashboard

import (
	"context"
	"errors"
	"iter"

	"handyhub/internal/backend"
	"handyhub/internal/domain"
	"handyhub/internal/domain/booking"
	"handyhub/internal/pkg/apperr"
)

// View is the role-scoped window onto bookings.
type View interface {
	Actor() domain.Actor
	// VisibleBookings lazily yields the bookings in scope. Each range
	// issues a fresh query.
	VisibleBookings(ctx context.Context) iter.Seq2[booking.Booking, error]
	// AvailableActions lists the statuses the viewer may move b to.
	AvailableActions(b booking.Booking) []booking.Status
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type CustomerView struct{ base }

type HandymanView struct {
	base
	// Eligible is whether the handyman is verified and active.
	Eligible bool
}

type AdminView struct{ base }

type base struct {
	c     *Composer
	actor domain.Actor
}

func (b base) Actor() domain.Actor { return b.actor }

func (b base) seq(ctx context.Context, q booking.ListQuery) iter.Seq2[booking.Booking, error] {
	return func(yield func(booking.Booking, error) bool) {
		rows, err := b.c.bookings.List(ctx, q)
		if err != nil {
			yield(booking.Booking{}, err)
			return
		}
		for _, r := range rows {
			if !yield(r, nil) {
				return
			}
		}
	}
}

func (v CustomerView) VisibleBookings(ctx context.Context) iter.Seq2[booking.Booking, error] {
	return v.seq(ctx, booking.ListQuery{CustomerID: v.actor.ID, Order: backend.Desc("created_at")})
}

// AvailableActions is always empty: customers do not move bookings.
func (v CustomerView) AvailableActions(booking.Booking) []booking.Status { return nil }

func (v CustomerView) Dashboard(ctx context.Context) (*Dashboard, error) {
	return v.c.build(ctx, v)
}

func (v HandymanView) VisibleBookings(ctx context.Context) iter.Seq2[booking.Booking, error] {
	return v.seq(ctx, booking.ListQuery{HandymanID: v.actor.ID, Order: backend.Asc("booking_date")})
}

func (v HandymanView) AvailableActions(b booking.Booking) []booking.Status {
	if !v.Eligible || !b.AssignedTo(v.actor.ID) {
		return nil
	}
	return booking.AllowedTargets(b.Status, domain.RoleHandyman)
}

func (v HandymanView) Dashboard(ctx context.Context) (*Dashboard, error) {
	d, err := v.c.build(ctx, v)
	if err != nil {
		return nil, err
	}
	eligible := v.Eligible
	d.Eligible = &eligible
	return d, nil
}

func (v AdminView) VisibleBookings(ctx context.Context) iter.Seq2[booking.Booking, error] {
	return v.seq(ctx, booking.ListQuery{Order: backend.Desc("created_at")})
}

func (v AdminView) AvailableActions(b booking.Booking) []booking.Status {
	return booking.AllowedTargets(b.Status, domain.RoleAdmin)
}

func (v AdminView) Dashboard(ctx context.Context) (*Dashboard, error) {
	d, err := v.c.build(ctx, v)
	if err != nil {
		return nil, err
	}
	if v.c.stats != nil {
		o, err := v.c.stats.Overview(ctx)
		if err != nil {
			return nil, err
		}
		d.Stats = o
	}
	return d, nil
}

// ForActor resolves the variant for actor. For handymen the profile is
// read once here; a missing profile means not eligible.
func (c *Composer) ForActor(ctx context.Context, actor domain.Actor) (View, error) {
	b := base{c: c, actor: actor}
	switch actor.Role {
	case domain.RoleCustomer:
		return CustomerView{b}, nil
	case domain.RoleAdmin:
		return AdminView{b}, nil
	case domain.RoleHandyman:
		p, err := c.handymen.Get(ctx, actor.ID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return HandymanView{base: b, Eligible: p != nil && p.Eligible()}, nil
	}
	return nil, apperr.Wrap(apperr.ErrForbidden, "unknown role %q", actor.Role)
}
