package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"handyhub/internal/domain"
	"handyhub/internal/pkg/apperr"
)

// Services resolves the price of a bookable (existing and active) service.
type Services interface {
	BookablePrice(ctx context.Context, serviceID int64) (decimal.Decimal, error)
}

// Handymen reports whether a handyman is verified and active.
type Handymen interface {
	Eligible(ctx context.Context, handymanID int64) (bool, error)
}

// Aggregates drops cached stats and recomputes the pending count.
type Aggregates interface {
	RefreshPending(ctx context.Context) (int64, error)
}

// Notifier receives a refresh signal after every successful booking write.
type Notifier interface {
	BookingChanged(b Booking, pending int64)
}

type Service struct {
	store      Store
	services   Services
	handymen   Handymen
	aggregates Aggregates
	notifier   Notifier
	log        *slog.Logger
	now        func() time.Time
}

func NewService(store Store, services Services, handymen Handymen, aggregates Aggregates, notifier Notifier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:      store,
		services:   services,
		handymen:   handymen,
		aggregates: aggregates,
		notifier:   notifier,
		log:        log.With("component", "booking"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Transition moves a booking to req.Status on behalf of actor.
//
// The booking is read, validated against the transition table and the
// actor's standing, then written with a compare-and-set on the status it
// was read with. A concurrent writer that wins the race makes this call
// fail with ErrStaleStatus rather than silently overwrite.
func (s *Service) Transition(ctx context.Context, id int64, req TransitionRequest, actor domain.Actor) (*Booking, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	to, err := ParseStatus(string(req.Status))
	if err != nil {
		return nil, err
	}

	state, err := s.actorState(ctx, actor)
	if err != nil {
		return nil, err
	}

	candidate := *b
	var assign *int64
	if req.HandymanID != nil {
		if !actor.IsAdmin() || b.Status != StatusPending || to != StatusAccepted {
			return nil, apperr.Wrap(apperr.ErrForbidden, "a handyman can only be assigned by an admin while accepting a pending booking")
		}
		if err := s.requireEligible(ctx, *req.HandymanID); err != nil {
			return nil, err
		}
		assign = req.HandymanID
		candidate.HandymanID = assign
	}

	if err := Check(&candidate, to, state); err != nil {
		return nil, err
	}

	now := s.now()
	ok, err := s.store.CompareAndSetStatus(ctx, b.ID, b.Status, to, assign, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStaleStatus
	}

	s.log.Info("booking transitioned",
		"booking_id", b.ID,
		"from", b.Status,
		"to", to,
		"user_id", actor.ID,
		"role", actor.Role,
	)

	candidate.Status = to
	candidate.UpdatedAt = now
	s.afterWrite(ctx, &candidate)
	return &candidate, nil
}

func (s *Service) actorState(ctx context.Context, actor domain.Actor) (ActorState, error) {
	state := ActorState{Actor: actor}
	if !actor.IsHandyman() {
		return state, nil
	}
	eligible, err := s.handymen.Eligible(ctx, actor.ID)
	if err != nil && !isNotFound(err) {
		return state, err
	}
	state.Eligible = eligible
	return state, nil
}

func (s *Service) requireEligible(ctx context.Context, handymanID int64) error {
	eligible, err := s.handymen.Eligible(ctx, handymanID)
	if err != nil {
		return err
	}
	if !eligible {
		return fmt.Errorf("%w (handyman %d)", ErrHandymanNotEligible, handymanID)
	}
	return nil
}

// afterWrite recomputes the pending aggregate and pushes the refresh
// signal. It never fails the write it follows.
func (s *Service) afterWrite(ctx context.Context, b *Booking) {
	var pending int64
	if s.aggregates != nil {
		n, err := s.aggregates.RefreshPending(ctx)
		if err != nil {
			s.log.Warn("refresh pending aggregate failed", "booking_id", b.ID, "error", err)
		}
		pending = n
	}
	if s.notifier != nil {
		s.notifier.BookingChanged(*b, pending)
	}
}
