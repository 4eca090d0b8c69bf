package stats

import (
	"context"
	"log/slog"
	"time"

	"handyhub/internal/domain/booking"
	"handyhub/internal/domain/handyman"
	"handyhub/internal/domain/inquiry"
)

type Service struct {
	counter Counter
	cache   Cache
	ttl     time.Duration
	log     *slog.Logger
	now     func() time.Time
}

// NewService wires the overview. A nil cache disables caching.
func NewService(counter Counter, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		counter: counter,
		cache:   cache,
		ttl:     ttl,
		log:     log.With("component", "stats"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Overview serves the cached overview or computes a fresh one. Cache
// failures degrade to recomputing.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	o, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn("stats cache read failed", "error", err)
	}
	if ok {
		return o, nil
	}
	return s.compute(ctx)
}

func (s *Service) compute(ctx context.Context) (*Overview, error) {
	byStatus, err := s.counter.BookingsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	handymen, err := s.counter.Rows(ctx, handyman.Table)
	if err != nil {
		return nil, err
	}
	inquiries, err := s.counter.Rows(ctx, inquiry.Table)
	if err != nil {
		return nil, err
	}

	o := &Overview{
		TotalHandymen:  handymen,
		TotalInquiries: inquiries,
		ByStatus:       byStatus,
		GeneratedAt:    s.now(),
	}
	for status, n := range byStatus {
		o.TotalBookings += n
		if status == booking.StatusPending {
			o.PendingBookings = n
		}
	}

	if err := s.cache.Set(ctx, o, s.ttl); err != nil {
		s.log.Warn("stats cache write failed", "error", err)
	}
	return o, nil
}

// Invalidate drops the cached overview so the next read recomputes it.
// Handyman and inquiry writes call it after they commit.
func (s *Service) Invalidate(ctx context.Context) error {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("stats cache invalidate failed", "error", err)
		return err
	}
	return nil
}

// RefreshPending drops the cached overview and recomputes it, returning
// the fresh pending count. Booking writes call it after they commit.
func (s *Service) RefreshPending(ctx context.Context) (int64, error) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("stats cache invalidate failed", "error", err)
	}
	o, err := s.compute(ctx)
	if err != nil {
		return 0, err
	}
	return o.PendingBookings, nil
}
